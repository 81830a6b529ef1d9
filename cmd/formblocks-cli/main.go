package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-formblocks"
	"github.com/goliatone/go-formblocks/pkg/content"
	"github.com/goliatone/go-formblocks/pkg/export"
	"github.com/goliatone/go-formblocks/pkg/render"
)

func main() {
	source := flag.String("source", "forms.yaml", "content document path")
	formName := flag.String("form", "", "form name to render (first form if empty)")
	action := flag.String("action", "", "form action URL")
	format := flag.String("format", "html", "output format: html or openapi")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	file, err := os.Open(*source)
	if err != nil {
		log.Fatalf("Failed to open source: %v", err)
	}
	trees, err := content.Load(file)
	file.Close()
	if err != nil {
		log.Fatalf("Failed to parse content document: %v", err)
	}

	form, ok := content.FindForm(trees, *formName)
	if !ok {
		log.Fatalf("No form %q in %s", *formName, *source)
	}

	var out []byte
	switch *format {
	case "html":
		out, err = formblocks.RenderHTML(ctx, form, render.RenderOptions{Action: *action})
	case "openapi":
		var schema formblocks.FormSchema
		schema, err = formblocks.CollectSchema(ctx, form)
		if err == nil {
			out, err = export.JSON(schema)
		}
	default:
		log.Fatalf("Unknown format %q (want html or openapi)", *format)
	}
	if err != nil {
		log.Fatalf("Failed to generate output: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Output written to %s\n", *output)
	} else {
		fmt.Println(string(out))
	}
}
