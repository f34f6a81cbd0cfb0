package engine

import (
	"time"

	"github.com/phyten/tinkerthis/internal/execx"
	"github.com/phyten/tinkerthis/internal/span"
)

// Item は 1 件の整形済みスニペットを表す
type Item struct {
	File    string      `json:"file,omitempty"`
	Lang    string      `json:"lang,omitempty"`
	Code    string      `json:"code"`
	Command string      `json:"command,omitempty"`
	Removed []span.Span `json:"removed,omitempty"`
	Stdout  string      `json:"stdout,omitempty"`
	Stderr  string      `json:"stderr,omitempty"`
}

// ItemError は 1 ファイルの処理に失敗した際の情報を表す
type ItemError struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Options は実行オプション
type Options struct {
	PHPPath      string
	Subcommand   string // default: artisan tinker
	Dir          string
	Clear        bool
	Jobs         int
	MatchTimeout time.Duration
	Selection    Selection
	Progress     bool
	Runner       execx.Runner `json:"-"`
}

// Result は出力
type Result struct {
	Items      []Item      `json:"items"`
	Total      int         `json:"total"`
	ElapsedMS  int64       `json:"elapsed_ms"`
	Errors     []ItemError `json:"errors,omitempty"`
	ErrorCount int         `json:"error_count"`
}
