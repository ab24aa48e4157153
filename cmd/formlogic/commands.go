package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	formlogic "github.com/robbyt/go-formlogic"
	"github.com/robbyt/go-formlogic/form"
	"github.com/robbyt/go-formlogic/form/schema"
	"github.com/robbyt/go-formlogic/internal/helpers"
	"github.com/robbyt/go-formlogic/options"
)

var errUsage = errors.New("usage")

func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// validate loads every file and prints its issues.
func (c *cli) validate(args []string) error {
	fs := c.flags("validate")
	asJSON := fs.Bool("json", false, "print results as JSON")
	if err := fs.Parse(args); err != nil {
		return usageErrorf("%v", err)
	}
	if fs.NArg() == 0 {
		return usageErrorf("validate needs at least one file")
	}

	failed := false
	for _, path := range fs.Args() {
		res, err := validateFile(path)
		if err != nil {
			failed = true
			fmt.Fprintf(c.stdout, "%s: %v\n", path, err)
			continue
		}
		if !res.IsValid {
			failed = true
		}
		if *asJSON {
			if err := writeJSON(c.stdout, map[string]any{"file": path, "result": res}); err != nil {
				return err
			}
			continue
		}
		writeReport(c.stdout, path, res)
	}
	if failed {
		return errInvalid
	}
	return nil
}

func validateFile(path string) (form.ValidationResult, error) {
	doc, err := formlogic.LoadDocument(path)
	if err != nil {
		return form.ValidationResult{}, err
	}
	return formlogic.Validate(doc.Fields), nil
}

func writeReport(w io.Writer, path string, res form.ValidationResult) {
	status := "ok"
	if !res.IsValid {
		status = "invalid"
	}
	fmt.Fprintf(w, "%s: %s (%d errors, %d warnings)\n", path, status, len(res.Errors), len(res.Warnings))
	for _, issue := range res.Errors {
		fmt.Fprintf(w, "  error   %s\n", issue)
	}
	for _, issue := range res.Warnings {
		fmt.Fprintf(w, "  warning %s\n", issue)
	}
}

// eval evaluates a form against responses and a query string.
func (c *cli) eval(ctx context.Context, args []string) error {
	fs := c.flags("eval")
	formPath := fs.String("form", "", "form document `file`")
	responses := fs.String("responses", "", "responses as inline JSON or YAML, a file, or - for stdin")
	query := fs.String("query", "", "URL query string or full URL carrying prefill parameters")
	seed := fs.Bool("seed", false, "treat prefilled values as answers for unanswered fields")
	if err := fs.Parse(args); err != nil {
		return usageErrorf("%v", err)
	}
	if *formPath == "" {
		return usageErrorf("eval needs -form")
	}

	opts, err := c.cfg.Options(c.logger.Handler())
	if err != nil {
		return err
	}
	opts = append(opts, options.WithPrefillSeeding(*seed))
	evaluator, err := formlogic.FromDocument(*formPath, opts...)
	if err != nil {
		return err
	}

	answers, err := c.readMap(*responses)
	if err != nil {
		return fmt.Errorf("reading responses: %w", err)
	}
	ctx, err = evaluator.PrepareContext(ctx, answers, helpers.RawQueryParams(queryPart(*query)))
	if err != nil {
		return err
	}
	res, err := evaluator.Eval(ctx)
	if err != nil {
		return err
	}
	return writeJSON(c.stdout, res)
}

// schema prints the JSON Schema of form documents.
func (c *cli) schema() error {
	raw, err := schema.MarshalJSONSchema()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, string(raw))
	return err
}

// prefillURL prints a link carrying prefill values.
func (c *cli) prefillURL(args []string) error {
	fs := c.flags("prefill-url")
	formPath := fs.String("form", "", "form document `file`")
	base := fs.String("base", "", "form `URL`")
	values := fs.String("values", "", "values as inline JSON or YAML, a file, or - for stdin")
	if err := fs.Parse(args); err != nil {
		return usageErrorf("%v", err)
	}
	if *formPath == "" || *base == "" {
		return usageErrorf("prefill-url needs -form and -base")
	}

	doc, err := formlogic.LoadDocument(*formPath)
	if err != nil {
		return err
	}
	raw, err := c.readMap(*values)
	if err != nil {
		return fmt.Errorf("reading values: %w", err)
	}
	link, err := formlogic.GeneratePrefillURL(*base, doc.Fields, form.ResponsesFrom(raw))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, link)
	return err
}

// readMap decodes a JSON or YAML object given inline, as a file path, or
// on stdin when src is "-". An empty src yields an empty map.
func (c *cli) readMap(src string) (map[string]any, error) {
	var content []byte
	switch trimmed := strings.TrimSpace(src); {
	case trimmed == "":
		return map[string]any{}, nil
	case trimmed == "-":
		b, err := io.ReadAll(c.stdin)
		if err != nil {
			return nil, err
		}
		content = b
	case strings.HasPrefix(trimmed, "{"):
		content = []byte(trimmed)
	default:
		b, err := os.ReadFile(trimmed)
		if err != nil {
			return nil, err
		}
		content = b
	}

	out := map[string]any{}
	if len(bytes.TrimSpace(content)) == 0 {
		return out, nil
	}
	if err := yaml.Unmarshal(content, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// queryPart strips everything up to the query of a full URL.
func queryPart(q string) string {
	if before, after, found := strings.Cut(q, "?"); found && !strings.Contains(before, "=") {
		q = after
	}
	q, _, _ = strings.Cut(q, "#")
	return q
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
