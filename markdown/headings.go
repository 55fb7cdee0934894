package markdown

import (
	"bytes"
	"fmt"

	"github.com/russross/blackfriday/v2"
	"github.com/shurcooL/sanitized_anchor_name"
)

// headingIDs hands out heading IDs that are unique across every document rendered since the
// last reset.
type headingIDs map[string]int

func (ids headingIDs) unique(id string) string {
	for count, found := ids[id]; found; count, found = ids[id] {
		tmp := fmt.Sprintf("%s-%d", id, count+1)

		if _, tmpFound := ids[tmp]; !tmpFound {
			ids[id] = count + 1
			id = tmp
		} else {
			id = id + "-1"
		}
	}

	if _, found := ids[id]; !found {
		ids[id] = 0
	}
	return id
}

// set sets the HeadingID of each heading node under node.
func (ids headingIDs) set(node *blackfriday.Node) {
	node.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if entering && node.Type == blackfriday.Heading {
			// Keep an ID given explicitly with `# foo {#myid}`.
			if node.HeadingID == "" {
				node.HeadingID = sanitized_anchor_name.Create(renderText(node))
			}
			node.HeadingID = ids.unique(node.HeadingID)
		}
		return blackfriday.GoToNext
	})
}

func renderText(node *blackfriday.Node) string {
	var parts [][]byte
	node.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch node.Type {
		case blackfriday.Text, blackfriday.Code:
			parts = append(parts, node.Literal)
		}
		return blackfriday.GoToNext
	})
	return string(bytes.Join(parts, nil))
}
