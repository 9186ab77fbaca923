package resume

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
)

// Markdown renders the live preview of the resume as markdown.
func (d Data) Markdown() string {
	var sb strings.Builder

	name := d.PersonalInfo.FullName
	if name == "" {
		name = "Your Name"
	}
	fmt.Fprintf(&sb, "# %s\n\n", escape(name))

	var contact []string
	for _, v := range []string{
		d.PersonalInfo.Email,
		d.PersonalInfo.Phone,
		d.PersonalInfo.Location,
		d.PersonalInfo.LinkedIn,
		d.PersonalInfo.Portfolio,
	} {
		if v != "" {
			contact = append(contact, escape(v))
		}
	}
	if len(contact) > 0 {
		sb.WriteString(strings.Join(contact, " | "))
		sb.WriteString("\n\n")
	}

	if d.PersonalInfo.Summary != "" {
		sb.WriteString("## Summary\n\n")
		sb.WriteString(escapeText(d.PersonalInfo.Summary))
		sb.WriteString("\n\n")
	}

	// sections appear once their first entry has content
	if len(d.Experience) > 0 && (d.Experience[0].Company != "" || d.Experience[0].Role != "") {
		sb.WriteString("## Experience\n\n")
		for _, exp := range d.Experience {
			if exp.Company == "" && exp.Role == "" {
				continue
			}
			fmt.Fprintf(&sb, "### %s\n\n", escape(exp.Role))
			line := escape(exp.Company)
			if exp.Location != "" {
				line += " · " + escape(exp.Location)
			}
			if period := exp.period(); period != "" {
				line += " · " + period
			}
			sb.WriteString(line)
			sb.WriteString("\n\n")
			if exp.Description != "" {
				sb.WriteString(escapeText(exp.Description))
				sb.WriteString("\n\n")
			}
		}
	}

	if len(d.Education) > 0 && (d.Education[0].School != "" || d.Education[0].Degree != "") {
		sb.WriteString("## Education\n\n")
		for _, edu := range d.Education {
			if edu.School == "" && edu.Degree == "" {
				continue
			}
			fmt.Fprintf(&sb, "### %s\n\n", escape(edu.School))
			var line []string
			if edu.Degree != "" {
				line = append(line, escape(edu.Degree))
			}
			if edu.GraduationDate != "" {
				line = append(line, escape(edu.GraduationDate))
			}
			if len(line) > 0 {
				sb.WriteString(strings.Join(line, " · "))
				sb.WriteString("\n\n")
			}
			if edu.GPA != "" {
				fmt.Fprintf(&sb, "GPA: %s\n\n", escape(edu.GPA))
			}
		}
	}

	// a blank first skill hides the section, later blanks are dropped
	var skills []string
	for _, s := range d.Skills {
		if strings.TrimSpace(s) != "" {
			skills = append(skills, escape(s))
		}
	}
	if len(d.Skills) > 0 && strings.TrimSpace(d.Skills[0]) != "" {
		sb.WriteString("## Skills\n\n")
		sb.WriteString(strings.Join(skills, ", "))
		sb.WriteString("\n\n")
	}

	if d.Activities != "" {
		sb.WriteString("## Activities\n\n")
		sb.WriteString(escapeText(d.Activities))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// HTML renders the preview markdown to an HTML fragment.
func (d Data) HTML() (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(d.Markdown()), &buf); err != nil {
		return "", fmt.Errorf("rendering preview: %w", err)
	}
	return buf.String(), nil
}

func (e Experience) period() string {
	end := e.EndDate
	if e.Current {
		end = "Present"
	}
	switch {
	case e.StartDate != "" && end != "":
		return escape(e.StartDate) + " - " + escape(end)
	case e.StartDate != "":
		return escape(e.StartDate)
	default:
		return escape(end)
	}
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
	"<", "&lt;",
	">", "&gt;",
)

var (
	bulletMarker  = regexp.MustCompile(`^[-+](\s|$)`)
	orderedMarker = regexp.MustCompile(`^(\d{1,9})([.)])(\s|$)`)
	underline     = regexp.MustCompile(`^(-+|=+)$`)
)

// escapeLine keeps one line of user input from being read as markdown or
// raw HTML, including markers that only mean something at line start.
func escapeLine(line string) string {
	line = mdEscaper.Replace(strings.TrimSpace(line))
	switch {
	case underline.MatchString(line), bulletMarker.MatchString(line), strings.HasPrefix(line, "~~~"):
		return `\` + line
	case orderedMarker.MatchString(line):
		return orderedMarker.ReplaceAllString(line, `${1}\${2}${3}`)
	}
	return line
}

// escape renders a single-line field; embedded newlines become spaces.
func escape(s string) string {
	return escapeLine(strings.Join(strings.Fields(s), " "))
}

// escapeText renders free text keeping its line breaks: single newlines
// become hard breaks, blank lines separate paragraphs.
func escapeText(s string) string {
	var (
		paras []string
		cur   []string
	)
	flush := func() {
		if len(cur) > 0 {
			paras = append(paras, strings.Join(cur, "\\\n"))
			cur = nil
		}
	}
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if line = escapeLine(line); line == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return strings.Join(paras, "\n\n")
}
