// Command ontopy queries RDF resources through SPARQL endpoints.
package main

import (
	"os"

	"github.com/afternoon/ontopy/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
