// Package config loads resource kind declarations.
//
// Kinds are declared in CUE or YAML, keyed by name:
//
//	kinds: Band: {
//		prefix: "http://dbpedia.org/ontology/"
//		label:  "Band"
//		endpoint: url: "http://dbpedia.org/sparql"
//	}
//
// CUE files are unified with an embedded #Kind schema that supplies the
// default language. Endpoint credentials can be kept out of the file and
// supplied through ONTOPY_<KIND>_USERNAME and ONTOPY_<KIND>_PASSWORD,
// optionally read from a .env file by LoadEnv.
package config
