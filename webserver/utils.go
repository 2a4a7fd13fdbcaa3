package webserver

import (
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strings"
)

var codeBlockRe = regexp.MustCompile("```([a-zA-Z]*)\n([\\s\\S]+?)```")

// formatMessage renders a message body as HTML: fenced code blocks become
// <pre><code> elements, everything else is escaped with line breaks kept.
func formatMessage(content string) template.HTML {
	var b strings.Builder
	last := 0
	for _, match := range codeBlockRe.FindAllStringSubmatchIndex(content, -1) {
		b.WriteString(escapeText(content[last:match[0]]))

		language := content[match[2]:match[3]]
		code := strings.TrimSpace(content[match[4]:match[5]])
		if language == "" {
			language = "text"
		}
		b.WriteString(fmt.Sprintf(`<pre class="line-numbers"><code class="language-%s">%s</code></pre>`,
			html.EscapeString(language),
			html.EscapeString(code)))

		last = match[1]
	}
	b.WriteString(escapeText(content[last:]))
	return template.HTML(b.String())
}

func escapeText(s string) string {
	s = template.HTMLEscapeString(s)
	return strings.ReplaceAll(s, "\n", "<br>")
}
