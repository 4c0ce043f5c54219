// Package resource binds the SPARQL builder to declared RDF classes.
//
// A Kind is one declared class: a type URI, the endpoint that knows its
// instances, and the language tag used when reading literal properties. A
// Kind seeds a Query selecting every instance:
//
//	select ?resource where { ?resource a <typeURI> }
//
// Query is a value. Where, Optional, Distinct and OrderBy each return a new
// Query wrapping an extended expression, so intermediate queries stay
// reusable:
//
//	bands := band.Query()
//	krautrock := bands.Where(band.NS("genre"), sparql.IRI("http://dbpedia.org/resource/Krautrock"))
//	withRother := krautrock.Where(band.NS("pastMembers"), rother.Term())
//
// Terminal operations (Results, List, At, Slice) serialize the expression,
// run it through the kind's Executor, and wrap every returned URI in a Handle.
// Nothing is cached between executions; iterating twice issues two queries.
//
// A Handle fetches its own RDF document on first property access and keeps
// the filtered property map for its lifetime. First access is synchronized,
// so a Handle shared between goroutines fetches exactly once.
package resource
