// Package report assembles the HTML comparison page from the artifacts and
// logs of every subject.
package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/harrison/flowtests/internal/models"
)

// SubjectFragment is everything needed to render one subject
type SubjectFragment struct {
	Subject  models.Subject
	Set      models.ArtifactSet // Non-empty; paths as they should appear in links
	LogLines []string           // Kept metric lines from the log
	LogPath  string             // Link target for the raw log
}

// RenderSubject renders one subject as a list of HTML elements. The caller
// joins elements with newlines. Rendering has no side effects.
//
// Layout, left to right: the first iteration as a hover-swappable image, the
// remaining comparison images stacked (also hover-swappable), the remaining
// output images stacked in a right-to-left column, then the first output
// image on its own.
func RenderSubject(frag SubjectFragment) []string {
	set := frag.Set
	if len(set) == 0 {
		return nil
	}

	attr := html.EscapeString
	left := set.ComparisonImages()
	right := set.OutputImages()

	elems := []string{
		`<table><tr>`,
		fmt.Sprintf(`<td><img src="%s" data-hover="%s" class="rollover"></td>`,
			attr(left[0]), attr(right[0])),
		`<td style="vertical-align:top">`,
	}
	for i := 1; i < len(left); i++ {
		elems = append(elems, fmt.Sprintf(`<img src="%s" data-hover="%s" class="rollover" style="display:block">`,
			attr(left[i]), attr(right[i])))
	}
	elems = append(elems, `</td>`, `<td style="vertical-align:top; direction:rtl">`)
	for _, img := range right[1:] {
		elems = append(elems, fmt.Sprintf(`<img src="%s" style="display:block">`, attr(img)))
	}
	elems = append(elems,
		`</td>`,
		fmt.Sprintf(`<td><img src="%s"></td>`, attr(right[0])),
		`</tr></table>`,
	)

	lines := make([]string, len(frag.LogLines))
	for i, line := range frag.LogLines {
		lines[i] = html.EscapeString(line)
	}
	elems = append(elems,
		strings.Join(lines, "<br>"),
		fmt.Sprintf(`<a href="%s">Log</a><br style="clear:both">`, attr(frag.LogPath)),
	)

	return elems
}
