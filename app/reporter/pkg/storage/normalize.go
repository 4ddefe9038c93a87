package storage

import (
	"net/url"
	"strings"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// 监测库中的正文可能是抓取下来的原始 HTML，readability 需要一个基准地址来解析相对链接
var baseURL = &url.URL{Scheme: "https", Host: "monitoring.local", Path: "/"}

// PlainText 把报道正文归一化为纯文本：HTML 先经 readability 抽取正文，
// 抽取失败时退化为遍历文本节点；最后清理无效 UTF-8、NULL 字节并压缩空白。
func PlainText(content string) string {
	content = cleanText(content)
	if looksLikeHTML(content) {
		article, err := readability.FromReader(strings.NewReader(content), baseURL)
		if err == nil && strings.TrimSpace(article.TextContent) != "" {
			content = article.TextContent
		} else {
			content = htmlText(content)
		}
	}
	return strings.Join(strings.Fields(content), " ")
}

func looksLikeHTML(s string) bool {
	i := strings.IndexByte(s, '<')
	if i < 0 {
		return false
	}
	j := strings.IndexByte(s[i:], '>')
	return j > 1
}

func htmlText(s string) string {
	root, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return b.String()
}

// cleanText 移除无效的 UTF-8 字符和 NULL 字节，PostgreSQL 文本字段不支持 NULL 字节
func cleanText(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return strings.ReplaceAll(s, "\x00", "")
}
