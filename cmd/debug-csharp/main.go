package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mvp-joe/project-classdoc/internal/extractor"
	"github.com/mvp-joe/project-classdoc/internal/parsers"
	"github.com/mvp-joe/project-classdoc/internal/syntax"
)

func main() {
	path := "testdata/code/csharp/shapes.cs"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	unit, err := parsers.NewCSharpParser().ParseFile(context.Background(), path)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== DECLARATIONS ===")
	for _, t := range unit.Types {
		printType(t, 1)
	}
	for _, ns := range unit.Namespaces {
		printNamespace(ns, 1)
	}

	entities, err := extractor.NewBuilder(extractor.BuilderOptions{}).Build(context.Background(), []string{path})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("\n=== ENTITIES ===")
	for _, e := range entities {
		fmt.Printf("  %s (%s): %d attributes, %d methods\n", e.FullName(), e.Kind, len(e.Attributes), len(e.Methods))
		for _, a := range e.Attributes {
			fmt.Printf("    - %s %s %s\n", a.Visibility, a.Type, a.Name)
		}
		for _, m := range e.Methods {
			fmt.Printf("    - %s %s %s(%d params)\n", m.Visibility, m.ReturnType, m.Name, len(m.Parameters))
		}
	}
}

func printNamespace(ns *syntax.NamespaceDecl, depth int) {
	fmt.Printf("%snamespace %s (line %d)\n", strings.Repeat("  ", depth), ns.Name, ns.Line)
	for _, t := range ns.Types {
		printType(t, depth+1)
	}
	for _, child := range ns.Namespaces {
		printNamespace(child, depth+1)
	}
}

func printType(t *syntax.TypeDecl, depth int) {
	fmt.Printf("%s%s %s [%s] (line %d, %d members)\n",
		strings.Repeat("  ", depth), t.Kind, t.Name, strings.Join(t.Modifiers, " "), t.Line, len(t.Members))
	for _, n := range t.Nested {
		printType(n, depth+1)
	}
}
