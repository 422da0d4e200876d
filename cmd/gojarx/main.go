package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"github.com/dop251/gojarx"
	"github.com/dop251/gojarx/unistring"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
var timelimit = flag.Int("timelimit", 0, "max time a single match may take (in seconds)")

var (
	op          = flag.String("op", "exec", "operation: exec, test, match, matchall, search, replace or split")
	pattern     = flag.String("pattern", "", "pattern source")
	flags       = flag.String("flags", "", "pattern flags")
	replacement = flag.String("replacement", "", "replacement template for -op replace")
	limit       = flag.Int64("limit", -1, "split limit, negative for none")
	input       = flag.String("input", "", "read the subject from file, - for stdin (default: remaining arguments)")
	enc         = flag.String("encoding", "utf8", "subject encoding: utf8, utf16le or utf16be")
	batch       = flag.String("batch", "", "run the jobs listed in a YAML file")
	statics     = flag.Bool("statics", false, "print the legacy RegExp statics when done")
)

// job is one operation. Batch files hold a list of them; jobs of one batch
// share a realm.
type job struct {
	Op          string `yaml:"op"`
	Pattern     string `yaml:"pattern"`
	Flags       string `yaml:"flags"`
	Input       string `yaml:"input"`
	LastIndex   int64  `yaml:"lastIndex"`
	Replacement string `yaml:"replacement"`
	Limit       *int64 `yaml:"limit"`
}

func decoder(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(name) {
	case "", "utf8", "utf-8":
		return unicode.UTF8BOM.NewDecoder(), nil
	case "utf16le", "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), nil
	case "utf16be", "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder(), nil
	}
	return nil, fmt.Errorf("unknown encoding %q", name)
}

func readSubject(filename, encName string) (string, error) {
	dec, err := decoder(encName)
	if err != nil {
		return "", err
	}
	var r io.Reader
	if filename == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(filename)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return "", fmt.Errorf("could not decode %s: %w", filename, err)
	}
	return string(b), nil
}

func loadBatch(filename string) ([]job, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var jobs []job
	if err := yaml.Unmarshal(b, &jobs); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", filename, err)
	}
	return jobs, nil
}

func formatCapture(c gojarx.Capture) string {
	if !c.Defined {
		return "undefined"
	}
	return strconv.Quote(c.Value.String())
}

func formatMatch(m *gojarx.Match) string {
	if m == nil {
		return "null"
	}
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(m.Index()))
	sb.WriteString(" [")
	for i := 0; i <= m.GroupCount(); i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		v, ok := m.Group(i)
		sb.WriteString(formatCapture(gojarx.Capture{Value: v, Defined: ok}))
	}
	sb.WriteByte(']')
	if names := m.GroupNames(); len(names) > 0 {
		sb.WriteString(" {")
		for i, n := range names {
			if i > 0 {
				sb.WriteByte(' ')
			}
			v, ok := m.NamedGroup(n)
			sb.WriteString(n)
			sb.WriteByte(':')
			sb.WriteString(formatCapture(gojarx.Capture{Value: v, Defined: ok}))
		}
		sb.WriteByte('}')
	}
	return sb.String()
}

func runJob(r *gojarx.Realm, j job, w io.Writer) error {
	rx, err := r.Compile(j.Pattern, j.Flags)
	if err != nil {
		return err
	}
	if err := rx.SetLastIndex(j.LastIndex); err != nil {
		return err
	}
	s := unistring.NewFromString(j.Input)

	switch j.Op {
	case "exec":
		m, err := r.Exec(rx, s)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, formatMatch(m))
	case "test":
		ok, err := r.Test(rx, s)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, ok)
	case "match":
		m, all, err := r.Match(rx, s)
		if err != nil {
			return err
		}
		if !rx.RawFlags().Has(gojarx.Global) {
			fmt.Fprintln(w, formatMatch(m))
			break
		}
		if all == nil {
			fmt.Fprintln(w, "null")
			break
		}
		for _, v := range all {
			fmt.Fprintln(w, strconv.Quote(v.String()))
		}
	case "matchall":
		it, err := r.MatchAll(rx, s)
		if err != nil {
			return err
		}
		for {
			m, ok, err := it.Next()
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			fmt.Fprintln(w, formatMatch(m))
		}
	case "search":
		idx, err := r.Search(rx, s)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, idx)
	case "replace":
		res, err := r.Replace(rx, s, unistring.NewFromString(j.Replacement))
		if err != nil {
			return err
		}
		fmt.Fprintln(w, strconv.Quote(res.String()))
	case "split":
		lim := int64(-1)
		if j.Limit != nil {
			lim = *j.Limit
		}
		parts, err := r.SplitCaptures(rx, s, lim)
		if err != nil {
			return err
		}
		for _, p := range parts {
			fmt.Fprintln(w, formatCapture(p))
		}
	default:
		return fmt.Errorf("unknown operation %q", j.Op)
	}
	return nil
}

func printStatics(st *gojarx.Statics, w io.Writer) {
	if !st.Valid() {
		fmt.Fprintln(w, "statics: unavailable")
		return
	}
	props := []struct {
		name string
		get  func() (unistring.String, error)
	}{
		{"input", st.Input},
		{"lastMatch", st.LastMatch},
		{"lastParen", st.LastParen},
		{"leftContext", st.LeftContext},
		{"rightContext", st.RightContext},
	}
	for _, p := range props {
		v, _ := p.get()
		fmt.Fprintf(w, "%s: %s\n", p.name, strconv.Quote(v.String()))
	}
	for n := 1; n <= 9; n++ {
		v, _ := st.Paren(n)
		fmt.Fprintf(w, "$%d: %s\n", n, strconv.Quote(v.String()))
	}
}

func run(w io.Writer) error {
	var opts []gojarx.Option
	if *timelimit > 0 {
		opts = append(opts, gojarx.WithMatchTimeout(time.Duration(*timelimit)*time.Second))
	}
	r := gojarx.NewRealm(opts...)
	defer r.Close()

	var jobs []job
	if *batch != "" {
		var err error
		jobs, err = loadBatch(*batch)
		if err != nil {
			return err
		}
	} else {
		j := job{
			Op:          *op,
			Pattern:     *pattern,
			Flags:       *flags,
			Replacement: *replacement,
			Limit:       limit,
		}
		if *input != "" {
			s, err := readSubject(*input, *enc)
			if err != nil {
				return err
			}
			j.Input = s
		} else {
			j.Input = strings.Join(flag.Args(), " ")
		}
		jobs = append(jobs, j)
	}

	for _, j := range jobs {
		if err := runJob(r, j, w); err != nil {
			return err
		}
	}
	if *statics {
		printStatics(r.Statics(), w)
	}
	return nil
}

func writeStack(w io.Writer) {
	w.Write(debug.Stack())
}

func main() {
	defer func() {
		if x := recover(); x != nil {
			writeStack(os.Stderr)
			panic(x)
		}
	}()
	flag.Parse()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	out := bufio.NewWriter(os.Stdout)
	err := run(out)
	out.Flush()
	if err != nil {
		fmt.Println(err)
		os.Exit(64)
	}
}
