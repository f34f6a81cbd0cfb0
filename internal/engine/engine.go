package engine

import (
	"context"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/phyten/tinkerthis/internal/detect"
	"github.com/phyten/tinkerthis/internal/flatten"
	"github.com/phyten/tinkerthis/internal/strip"
	"github.com/phyten/tinkerthis/internal/util"
)

const maxJobs = 64

// Prepare は行コメントを取り除き、シェルの二重引用符内に埋め込める 1 行へ整形します。
func Prepare(text string) string {
	return flatten.Flatten(strip.Strip(text))
}

// Preparer holds a Stripper configured from Options.
type Preparer struct {
	stripper *strip.Stripper
	opts     Options
}

func NewPreparer(opts Options) *Preparer {
	return &Preparer{stripper: strip.NewStripper(opts.MatchTimeout), opts: opts}
}

// Prepare is the package-level Prepare with the configured match timeout.
func (p *Preparer) Prepare(text string) string {
	return flatten.Flatten(p.stripper.Strip(text))
}

// Item prepares text and fills in the command when one can be built.
func (p *Preparer) Item(file, text string) Item {
	analysis := p.stripper.Analyze(text)
	item := Item{
		File:    file,
		Code:    flatten.Flatten(analysis.Text),
		Removed: analysis.Removed,
	}
	if file != "" {
		item.Lang = detect.FromPathAndContent(file, []byte(text)).Name
	}
	if cmd, err := BuildCommand(item.Code, p.opts); err == nil {
		item.Command = cmd
	}
	return item
}

// PrepareFiles は複数ファイルを並列に整形します。
//
// paths には "**" を含む glob も指定できます。読み込みに失敗したファイルや
// 何にも一致しなかった glob は Result.Errors に集約され、処理全体は中断されません。
func PrepareFiles(ctx context.Context, opts Options, paths []string) (*Result, error) {
	start := time.Now()
	paths, unmatched, err := ExpandPaths(paths)
	if err != nil {
		return nil, err
	}
	var errsMu sync.Mutex
	var errs []ItemError
	for _, pattern := range unmatched {
		errs = append(errs, ItemError{File: pattern, Stage: "glob", Message: "no files match"})
	}
	if len(paths) == 0 {
		return &Result{Items: nil, Total: 0, ElapsedMS: msSince(start), Errors: errs, ErrorCount: len(errs)}, nil
	}
	p := NewPreparer(opts)

	type job struct {
		idx  int
		path string
	}
	out := make([]*Item, len(paths))
	prog := util.NewProgress(len(paths), opts.Progress)

	jobs := make(chan job)
	var wg sync.WaitGroup
	worker := func() {
		defer wg.Done()
		for j := range jobs {
			select {
			case <-ctx.Done():
				continue
			default:
			}
			data, err := os.ReadFile(j.path)
			if err != nil {
				errsMu.Lock()
				errs = append(errs, newItemError(j.path, 0, "read", err))
				errsMu.Unlock()
				prog.Advance()
				continue
			}
			item := p.Item(j.path, string(data))
			out[j.idx] = &item
			prog.Advance()
		}
	}

	nw := clampJobs(opts.Jobs)
	if nw > len(paths) {
		nw = len(paths)
	}
	wg.Add(nw)
	for i := 0; i < nw; i++ {
		go worker()
	}
	for i, path := range paths {
		jobs <- job{idx: i, path: path}
	}
	close(jobs)
	wg.Wait()
	prog.Done()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(out))
	for _, it := range out {
		if it != nil {
			items = append(items, *it)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].File < items[j].File })
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].File == errs[j].File {
			return errs[i].Stage < errs[j].Stage
		}
		return errs[i].File < errs[j].File
	})

	return &Result{
		Items:      items,
		Total:      len(items),
		ElapsedMS:  msSince(start),
		Errors:     errs,
		ErrorCount: len(errs),
	}, nil
}

func clampJobs(n int) int {
	if n < 1 {
		return 1
	}
	if n > maxJobs {
		return maxJobs
	}
	return n
}

func newItemError(file string, line int, stage string, err error) ItemError {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "unknown error"
	}
	return ItemError{File: file, Line: line, Stage: stage, Message: msg}
}

func msSince(t time.Time) int64 { return time.Since(t).Milliseconds() }
