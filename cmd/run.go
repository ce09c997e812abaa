package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/ollama/pretokenize/api"
	"github.com/ollama/pretokenize/envconfig"
	"github.com/ollama/pretokenize/pretokenizer"
)

var errNoPreTokenizer = errors.New("no pre-tokenizer: use --config or --type")

// loadConfig reads a pre-tokenizer object from path. A full tokenizer.json
// is accepted as well, in which case its "pre_tokenizer" entry is used.
func loadConfig(path string) (pretokenizer.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	settings := v.AllSettings()
	if nested, ok := settings["pre_tokenizer"]; ok {
		m, ok := nested.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: pre_tokenizer is %v, want an object", path, nested)
		}

		settings = m
	}

	return pretokenizer.Config(settings), nil
}

// parseValue decodes a --set value as JSON when possible so that numbers,
// booleans and lists keep their types. Anything else is a string.
func parseValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

// setKey assigns value to a dotted key such as "pattern.Regex", creating
// nested objects as needed.
func setKey(c pretokenizer.Config, key string, value any) error {
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		next, ok := c.Config(part)
		if !ok {
			if c.Has(part) {
				return fmt.Errorf("--set %s: %s is not an object", key, part)
			}

			next = pretokenizer.Config{}
		}

		c[part] = map[string]any(next)
		c = next
	}

	c[parts[len(parts)-1]] = value
	return nil
}

func configFromFlags(cmd *cobra.Command) (pretokenizer.Config, error) {
	c := pretokenizer.Config{}
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if c, err = loadConfig(path); err != nil {
			return nil, err
		}
	}

	if t, _ := cmd.Flags().GetString("type"); t != "" {
		c["type"] = t
	}

	sets, _ := cmd.Flags().GetStringArray("set")
	for _, set := range sets {
		key, value, ok := strings.Cut(set, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("--set %q: want key=value", set)
		}

		if err := setKey(c, key, parseValue(value)); err != nil {
			return nil, err
		}
	}

	if !c.Has("type") {
		return nil, errNoPreTokenizer
	}

	return c, nil
}

// readInputs returns the joined arguments, or every line of r when there
// are none.
func readInputs(args []string, r io.Reader) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}

	var inputs []string
	maxLine := int(envconfig.MaxLineBytes())
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, maxLine)), maxLine)
	for scanner.Scan() {
		inputs = append(inputs, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return inputs, nil
}

type result struct {
	Text   string   `json:"text" cbor:"text"`
	Pieces []string `json:"pieces" cbor:"pieces"`
}

func RunHandler(cmd *cobra.Command, args []string) error {
	c, err := configFromFlags(cmd)
	if err != nil {
		return err
	}

	inputs, err := readInputs(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	specials, _ := cmd.Flags().GetStringSlice("specials")
	notFirst, _ := cmd.Flags().GetBool("not-first")
	remote, _ := cmd.Flags().GetBool("remote")

	opts := pretokenizer.DefaultOptions
	if notFirst {
		opts &^= pretokenizer.FirstSection
	}

	var fn func(string) ([]string, error)
	if remote {
		client, err := api.ClientFromEnvironment()
		if err != nil {
			return err
		}

		first := !notFirst
		fn = func(text string) ([]string, error) {
			resp, err := client.PreTokenize(cmd.Context(), &api.PreTokenizeRequest{
				Config:       c,
				Text:         text,
				Specials:     specials,
				FirstSection: &first,
			})
			if err != nil {
				return nil, err
			}
			return resp.Pieces, nil
		}
	} else {
		pt, err := pretokenizer.New(c)
		if err != nil {
			return err
		}

		fn = func(text string) ([]string, error) {
			return pretokenizer.PreTokenizeSections(pt, text, specials, opts), nil
		}
	}

	results := make([]result, len(inputs))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, text := range inputs {
		g.Go(func() error {
			pieces, err := fn(text)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}

			if pieces == nil {
				pieces = []string{}
			}

			results[i] = result{Text: text, Pieces: pieces}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	return writeResults(cmd.OutOrStdout(), format, results)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	if envconfig.NoColor() {
		table.SetHeaderLine(false)
		table.SetBorder(false)
		table.SetNoWhiteSpace(true)
		table.SetTablePadding("    ")
	}
	return table
}

func writeResults(w io.Writer, format string, results []result) error {
	if format == "" {
		format = "json"
		if isTerminal(w) {
			format = "table"
		}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
	case "cbor":
		enc := cbor.NewEncoder(w)
		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
	case "table":
		table := newTable(w, "#", "TEXT", "PIECES")
		for i, r := range results {
			quoted := make([]string, len(r.Pieces))
			for j, p := range r.Pieces {
				quoted[j] = strconv.Quote(p)
			}

			table.Append([]string{strconv.Itoa(i + 1), strconv.Quote(r.Text), strings.Join(quoted, " ")})
		}
		table.Render()
	default:
		return fmt.Errorf("unknown format %q, want json, cbor or table", format)
	}

	return nil
}
