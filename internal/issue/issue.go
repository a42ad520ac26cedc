// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	EmptySelectionId Id = iota + 1
	UnknownModuleId
	ConfigLoadFailedId
	CatalogLoadFailedId
	DependencyCycleId
	UnknownFormatId
)

type MarkdownMsg string

type HttpLink string

const cueDocs HttpLink = "https://cuelang.org/docs/"

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the issue help as terminal markdown using the glamour
// style at stylePath ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	emptySelectionIssue = &Issue{
		id: EmptySelectionId,
		mdMsg: `
# The module selection is empty!

The ` + "`demeter.modules`" + ` property was given, but it does not name any module.
Values made only of commas and spaces (for example ` + "`,,`" + `) are rejected.

## Things you can try:
- Select every module:
~~~
$ demeter modules --modules all
~~~

- Or list the modules you need, separated by commas:
~~~
$ demeter modules --modules productos,ventas
~~~

- Remove the property to fall back to all modules:
~~~
$ unset DEMETER_MODULES
~~~`,
	}

	unknownModuleIssue = &Issue{
		id: UnknownModuleId,
		mdMsg: `
# Unknown module requested!

Every name in ` + "`demeter.modules`" + ` must be a module of the catalog.
Names are matched case-insensitively after trimming spaces.

## Things you can try:
- List the catalog and check the spelling:
~~~
$ demeter modules list
~~~

- Module names are the project names without the ` + "`demeter-`" + ` prefix
  (` + "`demeter-ventas`" + ` is selected as ` + "`ventas`" + `).

- If you use a custom catalog, check the ` + "`catalog_file`" + ` setting:
~~~
$ demeter config show
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the demeter configuration file.

## Configuration file locations:
- Linux: ~/.config/demeter/config.cue
- macOS: ~/Library/Application Support/demeter/config.cue
- Windows: %APPDATA%\demeter\config.cue
- ./config.cue in the current directory

## Things you can try:
- Create a default configuration:
~~~
$ demeter config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults

## Example configuration:
~~~cue
modules: "productos,ventas"

ui: {
  color_scheme: "auto"
  verbose: false
}

log: {
  level: "info"
}
~~~`,
		extLinks: []HttpLink{cueDocs},
	}

	catalogLoadFailedIssue = &Issue{
		id: CatalogLoadFailedId,
		mdMsg: `
# Failed to load the module catalog!

The catalog file set through ` + "`--catalog`" + ` or ` + "`catalog_file`" + ` could not be used.

## Rules a catalog must follow:
- Module names are lowercase (` + "`[a-z][a-z0-9-]*`" + `) and unique
- The baseline module (default ` + "`common`" + `) must be listed
- ` + "`requires`" + ` entries must name other modules of the catalog
- ` + "`requires`" + ` must not form a cycle

## Example catalog:
~~~cue
baseline: "common"
modules: [
  {name: "common"},
  {name: "productos", description: "Products"},
  {name: "costos", requires: ["productos"]},
]
~~~`,
		extLinks: []HttpLink{cueDocs},
	}

	dependencyCycleIssue = &Issue{
		id: DependencyCycleId,
		mdMsg: `
# Dependency cycle detected!

The modules' ` + "`requires`" + ` entries form a cycle, so no wiring order exists.

## Example of a cycle:
~~~cue
modules: [
  {name: "a", requires: ["b"]},
  {name: "b", requires: ["a"]},  // Cycle: a -> b -> a
]
~~~

## Things you can try:
- Move the shared code into a module both can require
- Drop the requirement that closes the cycle`,
	}

	unknownFormatIssue = &Issue{
		id: UnknownFormatId,
		mdMsg: `
# Unknown manifest format!

## Supported formats:
- **text**: Gradle-style dependency lines
- **json**: indented JSON
- **toml**: TOML document

## Example:
~~~
$ demeter plan --format json
~~~`,
	}

	issues = map[Id]*Issue{
		emptySelectionIssue.Id():    emptySelectionIssue,
		unknownModuleIssue.Id():     unknownModuleIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		catalogLoadFailedIssue.Id(): catalogLoadFailedIssue,
		dependencyCycleIssue.Id():   dependencyCycleIssue,
		unknownFormatIssue.Id():     unknownFormatIssue,
	}
)

// Values returns every catalogued issue ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
