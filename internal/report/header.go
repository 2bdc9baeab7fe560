package report

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// rolloverScript swaps src and data-hover on every .rollover image while the
// pointer is over it, so one cell toggles between comparison and output.
const rolloverScript = `
<script type="text/javascript"
  src="http://ajax.googleapis.com/ajax/libs/jquery/1.2.6/jquery.min.js">
</script>
<script type="text/javascript">
$(document).ready(function() {
  $('.rollover').hover(function() {
    var currentImg = $(this).attr('src');
    $(this).attr('src', $(this).attr('data-hover'));
    $(this).attr('data-hover', currentImg);
  }, function() {
    var currentImg = $(this).attr('src');
    $(this).attr('src', $(this).attr('data-hover'));
    $(this).attr('data-hover', currentImg);
  });
});
</script>
`

// RenderIntro converts a markdown intro into an HTML fragment for the top of
// the report. Empty input renders to an empty string.
func RenderIntro(markdown []byte) (string, error) {
	if len(bytes.TrimSpace(markdown)) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	if err := goldmark.New().Convert(markdown, &buf); err != nil {
		return "", fmt.Errorf("render intro markdown: %w", err)
	}
	return `<div class="intro">` + "\n" + buf.String() + `</div>`, nil
}
