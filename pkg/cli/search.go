package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/getmockd/resolvermock/pkg/query"
	"github.com/getmockd/resolvermock/pkg/resolver"
)

func newFindCmd(o *rootOptions) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Find resources",
		Long: `Find resources and print their paths in tree order.

Languages:
  glob   doublestar path pattern, e.g. "/content/**/jcr:content"
  expr   boolean expression over path, name, resourceType and props,
         e.g. 'resourceType == "app/page" && props.title startsWith "A"'

Examples:
  resolverctl find -f content/ "/content/*/en"
  resolverctl find -f content/ --lang expr 'props.hidden == true'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains([]string{query.LanguageGlob, query.LanguageExpr}, lang) {
				return fmt.Errorf("unsupported query language %q", lang)
			}
			return o.withSession(cmd, func(s *resolver.Session) error {
				s.AddFindHandler(query.Glob(s))
				s.AddFindHandler(query.Expr(s))

				paths := []string{}
				for r := range s.FindResources(args[0], lang) {
					paths = append(paths, r.Path())
				}
				return o.printResult(cmd, paths, func() error {
					for _, p := range paths {
						fmt.Fprintln(cmd.OutOrStdout(), p)
					}
					return nil
				})
			})
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", query.LanguageGlob, "Query language: glob or expr")
	return cmd
}

func newQueryCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "query <root>|<jsonpath>",
		Short: "Run a JSONPath query over a subtree",
		Long: `Run a JSONPath query over the subtree at root, rendered as nested objects
with children under their names. Object matches are printed as rows; other
matches as {value: ...}.

Examples:
  resolverctl query -f site.yaml '/site|$..title'
  resolverctl query -f site.yaml '/site|$.en' --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withSession(cmd, func(s *resolver.Session) error {
				s.AddQueryHandler(query.JSONPath(s))

				rows := []map[string]any{}
				for row := range s.QueryResources(args[0], query.LanguageJSONPath) {
					rows = append(rows, row)
				}
				return o.printResult(cmd, rows, nil)
			})
		},
	}
}
