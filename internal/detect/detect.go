// Package detect guesses the language of a snippet from its path and content.
package detect

import (
	"bytes"
	"path/filepath"
	"strings"
)

// PHP is the canonical name reported for PHP sources.
const PHP = "php"

type Info struct {
	Name string
}

// IsPHP reports whether the detected language is PHP.
func (i Info) IsPHP() bool {
	return NormalizeLangName(i.Name) == PHP
}

// FromPathAndContent checks the file name first, then the shebang, then a
// leading PHP open tag. Unknown input yields an empty Info.
func FromPathAndContent(p string, data []byte) Info {
	if name := detectByPath(p); name != "" {
		return Info{Name: name}
	}
	if shebang := detectByShebang(data); shebang != "" {
		return Info{Name: shebang}
	}
	if hasOpenTag(data) {
		return Info{Name: PHP}
	}
	return Info{Name: ""}
}

func detectByPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "-" {
		return ""
	}
	lowerBase := strings.ToLower(filepath.Base(p))
	if lang, ok := basenameLanguages[lowerBase]; ok {
		return lang
	}
	ext := filepath.Ext(lowerBase)
	if ext == "" {
		return ""
	}
	// ".blade.php" and friends
	stem := strings.TrimSuffix(lowerBase, ext)
	if lang, ok := extensionLanguages[filepath.Ext(stem)+ext]; ok {
		return lang
	}
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return ""
}

func detectByShebang(data []byte) string {
	if len(data) == 0 || !bytes.HasPrefix(data, []byte("#!")) {
		return ""
	}
	end := bytes.IndexByte(data, '\n')
	if end == -1 {
		end = len(data)
	}
	fields := strings.Fields(strings.ToLower(string(data[2:end])))
	for _, field := range fields {
		name := filepath.Base(field)
		if name == "env" || strings.HasPrefix(name, "-") {
			continue
		}
		if lang, ok := shebangLanguages[strings.TrimRight(name, "0123456789.")]; ok {
			return lang
		}
		return ""
	}
	return ""
}

func hasOpenTag(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	return bytes.HasPrefix(bytes.ToLower(trimmed), []byte("<?php"))
}

func NormalizeLangName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	if canon, ok := langAliases[n]; ok {
		return canon
	}
	return n
}

var basenameLanguages = map[string]string{
	"artisan":           PHP,
	"composer.json":     "json",
	"composer.lock":     "json",
	".php_cs":           PHP,
	".php-cs-fixer.php": PHP,
}

var extensionLanguages = map[string]string{
	".php":       PHP,
	".php3":      PHP,
	".php4":      PHP,
	".php5":      PHP,
	".php7":      PHP,
	".php8":      PHP,
	".phtml":     PHP,
	".phpt":      PHP,
	".inc":       PHP,
	".blade.php": PHP,
	".js":        "javascript",
	".mjs":       "javascript",
	".cjs":       "javascript",
	".ts":        "typescript",
	".go":        "go",
	".c":         "c",
	".h":         "c",
	".cpp":       "cpp",
	".java":      "java",
	".cs":        "csharp",
	".rs":        "rust",
	".py":        "python",
	".rb":        "ruby",
	".sh":        "shell",
	".json":      "json",
	".yaml":      "yaml",
	".yml":       "yaml",
	".sql":       "sql",
	".html":      "html",
	".md":        "markdown",
	".txt":       "text",
}

var langAliases = map[string]string{
	"php3":  PHP,
	"php5":  PHP,
	"php7":  PHP,
	"php8":  PHP,
	"blade": PHP,
	"js":    "javascript",
	"ts":    "typescript",
	"py":    "python",
	"rb":    "ruby",
	"sh":    "shell",
	"bash":  "shell",
	"yml":   "yaml",
	"md":    "markdown",
}

var shebangLanguages = map[string]string{
	"php":    PHP,
	"python": "python",
	"node":   "javascript",
	"deno":   "javascript",
	"ruby":   "ruby",
	"perl":   "perl",
	"bash":   "shell",
	"sh":     "shell",
	"zsh":    "shell",
}
