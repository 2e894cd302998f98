package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/getmockd/resolvermock/pkg/cli/internal/output"
	"github.com/getmockd/resolvermock/pkg/fixture"
	"github.com/getmockd/resolvermock/pkg/resolver"
)

// ResourceOutput is the description of a single resource.
type ResourceOutput struct {
	Path              string         `json:"path" yaml:"path"`
	Name              string         `json:"name" yaml:"name"`
	ResourceType      string         `json:"resourceType" yaml:"resourceType"`
	ResourceSuperType string         `json:"resourceSuperType,omitempty" yaml:"resourceSuperType,omitempty"`
	Properties        map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
	Value             any            `json:"value,omitempty" yaml:"value,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Children          []string       `json:"children,omitempty" yaml:"children,omitempty"`
}

func describe(s *resolver.Session, r resolver.Resource) (ResourceOutput, error) {
	out := ResourceOutput{
		Path:              r.Path(),
		Name:              r.Name(),
		ResourceType:      r.ResourceType(),
		ResourceSuperType: r.ResourceSuperType(),
	}
	if md := r.Metadata(); len(md) > 0 {
		out.Metadata = md
	}
	if resolver.IsNonExisting(r) {
		return out, nil
	}
	if p, ok := r.(*resolver.PropertyResource); ok {
		dumped, err := fixture.Dump(s, p.Path(), 0)
		if err != nil {
			return out, err
		}
		out.Value = dumped[p.Key()]
		return out, nil
	}

	props, err := fixture.Dump(s, r.Path(), 0)
	if err != nil {
		return out, err
	}
	if len(props) > 0 {
		out.Properties = props
	}
	for c := range s.Children(r) {
		out.Children = append(out.Children, c.Name())
	}
	return out, nil
}

func newTreeCmd(o *rootOptions) *cobra.Command {
	var depth int
	cmd := &cobra.Command{
		Use:   "tree [path]",
		Short: "Print a subtree",
		Long: `Print the subtree at path (default /) as YAML, or JSON with --json.
The output is itself a valid fixture document.

Examples:
  resolverctl tree -f content/ /content
  resolverctl tree -f site.yaml --depth 1 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := "/"
			if len(args) == 1 {
				p = args[0]
			}
			return o.withSession(cmd, func(s *resolver.Session) error {
				doc, err := fixture.Dump(s, p, depth)
				if err != nil {
					return err
				}
				return o.printResult(cmd, doc, nil)
			})
		},
	}
	cmd.Flags().IntVarP(&depth, "depth", "d", -1, "Number of child levels to print (-1 for all)")
	return cmd
}

func newGetCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "Show a resource or property",
		Long: `Show a single resource: its type, properties and child names. Relative
paths are looked up below each search path. A path naming a property of
its parent shows the property value.

Examples:
  resolverctl get -f site.yaml /site/en
  resolverctl get -f site.yaml /site/en/title
  resolverctl get -f components/ --root /apps app/page`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withSession(cmd, func(s *resolver.Session) error {
				r, ok := s.Get(args[0])
				if !ok {
					return fmt.Errorf("%s: %w", args[0], resolver.ErrNotFound)
				}
				out, err := describe(s, r)
				if err != nil {
					return err
				}
				return o.printResult(cmd, out, nil)
			})
		},
	}
}

func newResolveCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path>",
		Short: "Resolve a request path",
		Long: `Resolve a request path the way a request would be. Anything from the
first '?' or '#' is reported as sling.resolutionPathInfo. Paths that do not
resolve yield a resource of type sling:nonexisting instead of an error.

Examples:
  resolverctl resolve -f site.yaml "/site/en?lang=de"
  resolverctl resolve -f site.yaml /site/missing`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withSession(cmd, func(s *resolver.Session) error {
				out, err := describe(s, s.Resolve(args[0]))
				if err != nil {
					return err
				}
				return o.printResult(cmd, out, nil)
			})
		},
	}
}

// ChildOutput is one row of ls.
type ChildOutput struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	ResourceType string `json:"resourceType"`
	HasChildren  bool   `json:"hasChildren"`
}

func newLsCmd(o *rootOptions) *cobra.Command {
	var sortLocale string
	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "List the children of a resource",
		Long: `List the children of the resource at path (default /) in tree order, or
sorted by name with the collation rules of a locale with --sort.

Examples:
  resolverctl ls -f site.yaml /site
  resolverctl ls -f site.yaml /site --sort de --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := "/"
			if len(args) == 1 {
				p = args[0]
			}
			return o.withSession(cmd, func(s *resolver.Session) error {
				r, ok := s.Get(p)
				if !ok {
					return fmt.Errorf("%s: %w", p, resolver.ErrNotFound)
				}
				rows := []ChildOutput{}
				for c := range s.Children(r) {
					rows = append(rows, ChildOutput{
						Name:         c.Name(),
						Path:         c.Path(),
						ResourceType: c.ResourceType(),
						HasChildren:  s.HasChildren(c),
					})
				}
				if sortLocale != "" {
					if err := sortByName(rows, sortLocale); err != nil {
						return err
					}
				}
				return o.printResult(cmd, rows, func() error {
					tw := output.Table(cmd.OutOrStdout())
					fmt.Fprintln(tw, "NAME\tTYPE\tCHILDREN")
					for _, row := range rows {
						fmt.Fprintf(tw, "%s\t%s\t%t\n", row.Name, row.ResourceType, row.HasChildren)
					}
					return tw.Flush()
				})
			})
		},
	}
	cmd.Flags().StringVar(&sortLocale, "sort", "", "Sort by name using the collation of this locale (e.g. en, de, sv)")
	return cmd
}

func sortByName(rows []ChildOutput, locale string) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	col := collate.New(tag)
	slices.SortStableFunc(rows, func(a, b ChildOutput) int {
		return col.CompareString(a.Name, b.Name)
	})
	return nil
}

// TypesOutput is the resource type chain of a resource.
type TypesOutput struct {
	Path  string   `json:"path" yaml:"path"`
	Types []string `json:"types" yaml:"types"`
	Is    *bool    `json:"is,omitempty" yaml:"is,omitempty"`
}

func newTypesCmd(o *rootOptions) *cobra.Command {
	var is string
	cmd := &cobra.Command{
		Use:   "types <path>",
		Short: "Show the resource type hierarchy",
		Long: `Show the resource type of a resource followed by its super types. Super
types are read from sling:resourceSuperType, on the resource itself or on
the resource that defines its type below a search path.

With --is, also report whether the resource is of the given type.

Examples:
  resolverctl types -f apps.yaml --root /apps -f site.yaml /site/en
  resolverctl types -f apps.yaml --root /apps -f site.yaml /site/en --is app/base`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withSession(cmd, func(s *resolver.Session) error {
				r, ok := s.Get(args[0])
				if !ok {
					return fmt.Errorf("%s: %w", args[0], resolver.ErrNotFound)
				}
				out := TypesOutput{Path: r.Path(), Types: typeChain(s, r)}
				if is != "" {
					ok, err := s.IsResourceType(r, is)
					if err != nil {
						return err
					}
					out.Is = &ok
				}
				return o.printResult(cmd, out, nil)
			})
		},
	}
	cmd.Flags().StringVar(&is, "is", "", "Check whether the resource is of this type")
	return cmd
}

// typeChain stops at the first repeated type.
func typeChain(s *resolver.Session, r resolver.Resource) []string {
	chain := []string{r.ResourceType()}
	seen := map[string]bool{r.ResourceType(): true}
	for t := s.ParentResourceType(r); t != "" && !seen[t]; t = s.ParentResourceTypeOf(t) {
		seen[t] = true
		chain = append(chain, t)
	}
	return chain
}
