// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	DirectoryNotFoundId Id = iota + 1
	NoIconsFoundId
	SymbolExtractionMissId
	NormalizeFailedId
	WatchStartFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	name     string      // kebab-case name accepted by 'iconsprite explain'
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) Name() string {
	return i.name
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	directoryNotFoundIssue = &Issue{
		id:   DirectoryNotFoundId,
		name: "directory-not-found",
		mdMsg: `
# Icons directory not found

The configured icons directory does not exist (or is not a directory), so
the sprite is empty and nothing is injected into your pages.

## Things you can try:
- Check the 'dir' setting in your iconsprite.cue
- Pass the directory explicitly:
~~~
$ iconsprite build --dir ./src/icons
~~~`,
	}

	noIconsFoundIssue = &Issue{
		id:   NoIconsFoundId,
		name: "no-icons-found",
		mdMsg: `
# No SVG icons found

The icons directory exists but contains no files ending in '.svg'.
Subdirectories are not scanned.

## Things you can try:
- Move your icons to the top level of the directory
- Check the 'ignore' globs in your config, they may exclude every file`,
	}

	symbolExtractionMissIssue = &Issue{
		id:   SymbolExtractionMissId,
		name: "symbol-extraction-miss",
		mdMsg: `
# Icon skipped: no <svg> element

After optimization the file had no complete '<svg>...</svg>' element, so it
was left out of the sprite. The rest of the sprite is still built.

## Things you can try:
- Open the file and check that it is an SVG document, not an HTML fragment
- Make sure the root element is not self-closing ('<svg/>')`,
		extLinks: []HttpLink{"https://developer.mozilla.org/en-US/docs/Web/SVG/Element/symbol"},
	}

	normalizeFailedIssue = &Issue{
		id:   NormalizeFailedId,
		name: "normalize-failed",
		mdMsg: `
# Icon skipped: optimization failed

The optimization pipeline rejected the file. The icon is skipped and the rest
of the sprite is still built. Failures are not retried.

## Things you can try:
- Run with '--verbose' to see which pass failed
- Remove custom 'substitutions' from the config and try again`,
	}

	watchStartFailedIssue = &Issue{
		id:   WatchStartFailedId,
		name: "watch-start-failed",
		mdMsg: `
# Watching disabled

Watching was requested but the icons directory could not be watched, usually
because it does not exist yet. Pages are still served; edits to icons will
not trigger a reload until the server is restarted.`,
	}

	configLoadFailedIssue = &Issue{
		id:   ConfigLoadFailedId,
		name: "config-load-failed",
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Generate a fresh config file:
~~~
$ iconsprite config init
~~~
- Show the effective configuration:
~~~
$ iconsprite config show
~~~`,
	}

	issues = map[Id]*Issue{
		directoryNotFoundIssue.Id():    directoryNotFoundIssue,
		noIconsFoundIssue.Id():         noIconsFoundIssue,
		symbolExtractionMissIssue.Id(): symbolExtractionMissIssue,
		normalizeFailedIssue.Id():      normalizeFailedIssue,
		watchStartFailedIssue.Id():     watchStartFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
	}
)

// Values returns all catalog entries ordered by Id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return int(a.id) - int(b.id)
	})
}

func Get(id Id) *Issue {
	return issues[id]
}

// Lookup finds an issue by its kebab-case name.
func Lookup(name string) (*Issue, bool) {
	for _, i := range issues {
		if i.name == name {
			return i, true
		}
	}
	return nil, false
}
