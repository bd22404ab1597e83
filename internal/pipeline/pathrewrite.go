package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rewritable maps elements to the attribute holding a local path.
// Media elements, srcset and CSS url() references are left alone.
var rewritable = map[atom.Atom]string{
	atom.Img:  "src",
	atom.A:    "href",
	atom.Link: "href",
}

// RewriteRelativePaths turns relative img/a/link paths into file:// URLs
// under baseDir. Chrome loads the page from a temp file, so paths such as
// assets/logo.png would otherwise resolve against the temp directory.
// An empty baseDir returns the HTML unchanged. Paths escaping baseDir are
// kept as written.
func RewriteRelativePaths(htmlContent, baseDir string) (string, error) {
	if baseDir == "" {
		return htmlContent, nil
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	walk(doc, func(n *html.Node) {
		attr, ok := rewritable[n.DataAtom]
		if !ok {
			return
		}
		for i := range n.Attr {
			if n.Attr[i].Key != attr || !isRelativePath(n.Attr[i].Val) {
				continue
			}
			abs := filepath.Join(absBase, filepath.FromSlash(n.Attr[i].Val))
			if isPathUnderDir(abs, absBase) {
				n.Attr[i].Val = pathToFileURL(abs)
			}
		}
	})

	return renderHTML(doc, isFragment)
}

func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// parseHTML parses a full document or a body fragment. Fragments are
// wrapped in a document node so traversal is uniform.
func parseHTML(content string) (*html.Node, bool, error) {
	head := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders a document, or only the children of a fragment container.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder
	if !isFragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// isRelativePath reports whether p is a local relative path: not empty,
// not an anchor, not absolute and without a URL scheme.
func isRelativePath(p string) bool {
	if p == "" || strings.HasPrefix(p, "#") || strings.HasPrefix(p, "//") {
		return false
	}
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") {
		return false
	}
	if u, err := url.Parse(p); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return false
	}
	return true
}

// isPathUnderDir checks if absPath is dir itself or inside it.
func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir) + string(filepath.Separator)
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // Windows drive letter
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
