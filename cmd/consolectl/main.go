package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	console "github.com/everkeep/go-admin-console/components/console"
)

type cli struct {
	Scaffold scaffoldCmd `cmd:"" help:"Scaffold a panel definition, fetch stub, and manifest entry."`
}

type scaffoldCmd struct {
	Code         string   `required:"" help:"Fully-qualified panel code (e.g. acme.panel.billing)."`
	Name         string   `required:"" help:"Display name for the panel."`
	Description  string   `required:"" help:"One-line description used in manifests."`
	Category     string   `default:"custom" help:"Panel category (metrics, activity, management, ...)."`
	ManifestPath string   `required:"" type:"path" help:"Path to the panel manifest YAML/JSON file to update."`
	SchemaPath   string   `type:"path" help:"Optional path to a JSON schema file for the panel configuration."`
	Tag          []string `help:"Optional tags to include in the manifest (use multiple --tag flags)."`
	Maintainer   []string `help:"Maintainers to record in the manifest."`
	Capabilities []string `help:"Source capability labels (json,ws,sse,...)."`
	DocsURL      string   `help:"Link to the panel's documentation."`
	Channel      string   `help:"Distribution channel label (community, partner, internal)."`
	SourcePkg    string   `default:"github.com/everkeep/go-admin-console/components/console" help:"Go package where the panel constructor lives."`
	StubOut      string   `help:"File path for the generated panel stub (defaults to components/console/panels/<code>_panel.go)."`
	Overwrite    bool     `help:"Overwrite existing panel stub / manifest entry if present."`
	SkipStub     bool     `name:"skip-stub" help:"Skip panel stub generation."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Panel scaffolding utility for admin console manifests."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	if err := cmd.validate(); err != nil {
		return err
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("consolectl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	if !cmd.Overwrite {
		for _, panel := range doc.Panels {
			if panel.Definition.Code == cmd.Code {
				return fmt.Errorf("consolectl: manifest already defines panel %s (use --overwrite to replace)", cmd.Code)
			}
		}
	}

	schema, err := cmd.loadSchema()
	if err != nil {
		return err
	}

	baseName := deriveBaseName(cmd.Code)
	entry := console.ManifestPanel{
		Definition: console.PanelDefinition{
			Code:        cmd.Code,
			Name:        cmd.Name,
			Description: cmd.Description,
			Category:    cmd.Category,
			Schema:      schema,
		},
		Source: console.ManifestSource{
			Name:         fmt.Sprintf("%s Panel", cmd.Name),
			Summary:      cmd.Description,
			Package:      cmd.SourcePkg,
			DocsURL:      cmd.DocsURL,
			Capabilities: cmd.Capabilities,
			Channel:      cmd.Channel,
		},
		Maintainers: cmd.Maintainer,
		Tags:        cmd.Tag,
	}

	if cmd.Overwrite {
		replaced := false
		for idx := range doc.Panels {
			if doc.Panels[idx].Definition.Code == cmd.Code {
				doc.Panels[idx] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			doc.Panels = append(doc.Panels, entry)
		}
	} else {
		doc.Panels = append(doc.Panels, entry)
	}

	sort.Slice(doc.Panels, func(i, j int) bool {
		return doc.Panels[i].Definition.Code < doc.Panels[j].Definition.Code
	})

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}

	if cmd.SkipStub {
		fmt.Fprintf(os.Stdout, "✓ Added %s to %s\n", cmd.Code, manifestPath)
		return nil
	}

	stubPath := cmd.StubOut
	if stubPath == "" {
		stubPath = filepath.Join("components", "console", "panels", fmt.Sprintf("%s_panel.go", sanitizeFileName(cmd.Code)))
	}
	if err := writePanelStub(stubPath, baseName, cmd.Code, cmd.Overwrite); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s to %s and generated %s\n", cmd.Code, manifestPath, stubPath)
	return nil
}

func (cmd *scaffoldCmd) validate() error {
	if !strings.Contains(cmd.Code, ".") {
		return fmt.Errorf("consolectl: panel code %s must contain at least one '.' segment", cmd.Code)
	}
	return nil
}

func (cmd *scaffoldCmd) loadSchema() (map[string]any, error) {
	if cmd.SchemaPath == "" {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}, nil
	}
	data, err := os.ReadFile(cmd.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("consolectl: read schema file: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("consolectl: parse schema JSON: %w", err)
	}
	return schema, nil
}

func loadOrInitManifest(path string) (*console.PanelManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			doc := &console.PanelManifestDocument{
				Version: console.ManifestVersion,
				Panels:  []console.ManifestPanel{},
				Source:  path,
			}
			return doc, nil
		}
		return nil, fmt.Errorf("consolectl: stat manifest: %w", err)
	}
	doc, err := console.ReadManifest(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func writeManifest(path string, doc *console.PanelManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("consolectl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("consolectl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("consolectl: write manifest: %w", err)
	}
	return nil
}

func writePanelStub(path, baseName, code string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("consolectl: panel stub %s already exists (use --overwrite or --stub-out)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("consolectl: mkdir stub dir: %w", err)
	}
	content := fmt.Sprintf(`package console

import (
	"context"
)

// %[1]sData is the payload served by %[2]s panels.
type %[1]sData struct{}

// New%[1]sPanel wires the panel into the console.
func New%[1]sPanel(opts ...PanelOption[%[1]sData]) *Panel[%[1]sData] {
	fetch := func(ctx context.Context) (*%[1]sData, error) {
		return &%[1]sData{}, nil
	}
	return NewPanel(%[3]q, fetch, opts...)
}
`, baseName, code, code)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("consolectl: write panel stub: %w", err)
	}
	return nil
}

func deriveBaseName(code string) string {
	parts := strings.Split(code, ".")
	slug := parts[len(parts)-1]
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = code
	}
	return strcase.ToCamel(slug)
}

func sanitizeFileName(code string) string {
	replacer := strings.NewReplacer(".", "_", "-", "_", "/", "_", " ", "_")
	return strings.ToLower(replacer.Replace(code))
}
