package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/devhubhq/go-formkit/pkg/form"
	"github.com/devhubhq/go-formkit/pkg/model"
	"github.com/devhubhq/go-formkit/pkg/openapi"
	"github.com/devhubhq/go-formkit/pkg/schemafile"
	"github.com/devhubhq/go-formkit/pkg/tui"
)

func main() {
	schemaPath := flag.String("schema", "", "field definition document (YAML or JSON)")
	specPath := flag.String("openapi", "", "OpenAPI document to derive fields from")
	operation := flag.String("operation", "", "operation ID when using -openapi")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	fields, err := loadFields(ctx, *schemaPath, *specPath, *operation)
	if err != nil {
		log.Fatalf("Failed to load fields: %v", err)
	}

	f := form.New(fields)
	filler := tui.NewFiller()

	var payload []byte
	err = filler.Run(ctx, f, func(_ context.Context, values model.Values) error {
		out := make(map[string]any, len(values))
		for name, value := range values {
			if value.IsList() {
				out[name] = value.Items()
			} else {
				out[name] = value.Text()
			}
		}
		encoded, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		payload = encoded
		return nil
	})
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(130)
		}
		log.Fatalf("Failed to collect form values: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Values written to %s\n", *output)
	} else {
		fmt.Println(string(payload))
	}
}

func loadFields(ctx context.Context, schemaPath, specPath, operation string) ([]model.FieldDefinition, error) {
	switch {
	case schemaPath != "":
		file, err := os.Open(schemaPath)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return schemafile.Load(file)

	case specPath != "":
		if strings.TrimSpace(operation) == "" {
			return nil, fmt.Errorf("-operation is required with -openapi")
		}
		doc, err := openapi.LoadFile(ctx, specPath)
		if err != nil {
			return nil, err
		}
		return openapi.FieldsForOperation(doc, operation)

	default:
		return nil, fmt.Errorf("one of -schema or -openapi is required")
	}
}
