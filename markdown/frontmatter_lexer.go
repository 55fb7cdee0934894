package markdown

import (
	"github.com/alecthomas/chroma"
	. "github.com/alecthomas/chroma" // nolint
	"github.com/alecthomas/chroma/lexers"
)

// FrontMatter lexes line-dialect metadata blocks ("name: value" lines between "+++" or "---"
// delimiters), so documentation about documents can highlight examples of them.
var FrontMatter = lexers.Register(chroma.MustNewLexer(
	&Config{
		Name:    "Front Matter",
		Aliases: []string{"frontmatter", "front-matter", "meta"},
	},
	frontMatterRules(),
))

//nolint
func frontMatterRules() Rules {
	return Rules{
		"root": {
			{Pattern: `^(\+{3,}|-{3,}|\.\.\.)\s*$`, Type: CommentPreproc, Mutator: nil},
			{Pattern: `^([^:\n]+)(:)`, Type: ByGroups(NameAttribute, Punctuation), Mutator: Push("value")},
			{Pattern: `\n`, Type: TextWhitespace, Mutator: nil},
			{Pattern: `[^\n]+`, Type: Error, Mutator: nil},
		},
		"value": {
			{Pattern: `\n`, Type: TextWhitespace, Mutator: Pop(1)},
			{Pattern: `[ \t]+`, Type: TextWhitespace, Mutator: nil},
			{Pattern: `\d{4}-\d{2}-\d{2}([ _T]\d{2}:\d{2}(:\d{2})?)?`, Type: LiteralDate, Mutator: nil},
			{Pattern: `[^\n]+`, Type: LiteralString, Mutator: nil},
		},
	}
}
