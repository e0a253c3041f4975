// Command rtnl-dump decodes rtnetlink interface information messages
// and views codec event logs.
//
// Usage:
//
//	rtnl-dump <command> [flags]
//
// Commands:
//
//	decode   Decode a hex-encoded message and print the attribute tree
//	log      View a codec event log file
//
// Examples:
//
//	# Decode a message captured from a netlink socket
//	rtnl-dump decode -hex 0000010002000000...
//
//	# Decode from a file of hex text, recording codec events
//	rtnl-dump decode -events codec.clog message.hex
//
//	# View the fallback events from a codec log
//	rtnl-dump log -category FALLBACK codec.clog
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rtnl-protocol/rtnl-go/pkg/log"
	"github.com/rtnl-protocol/rtnl-go/pkg/nla"
	"github.com/rtnl-protocol/rtnl-go/pkg/rtnl"
)

const usage = `rtnl-dump - rtnetlink interface message decoder

Usage:
  rtnl-dump <command> [flags]

Commands:
  decode   Decode a hex-encoded message and print the attribute tree
  log      View a codec event log file

Use "rtnl-dump <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	switch cmd := os.Args[1]; cmd {
	case "decode":
		runDecode(os.Args[2:])
	case "log":
		runLog(os.Args[2:])
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `rtnl-dump decode - Decode a hex-encoded message

Usage:
  rtnl-dump decode [flags] [file]

The message is read from -hex, from the file argument, or from stdin.
Whitespace in the hex text is ignored.

Flags:
`)
		fs.PrintDefaults()
	}

	hexArg := fs.String("hex", "", "Hex-encoded message bytes")
	events := fs.String("events", "", "Write codec events to this file")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	text := *hexArg
	if text == "" {
		var (
			raw []byte
			err error
		)
		if fs.NArg() > 0 {
			raw, err = os.ReadFile(fs.Arg(0))
		} else {
			raw, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			fatalf("reading input: %v", err)
		}
		text = string(raw)
	}

	b, err := hex.DecodeString(strings.Join(strings.Fields(text), ""))
	if err != nil {
		fatalf("decoding hex: %v", err)
	}

	opts := []rtnl.Option{}
	if *events != "" {
		fl, err := log.NewFileLogger(*events)
		if err != nil {
			fatalf("opening event log: %v", err)
		}
		defer fl.Close()
		opts = append(opts, rtnl.WithLogger(fl))
	}

	m, err := rtnl.NewCodec(opts...).Decode(b)
	if err != nil {
		fatalf("decoding message: %v", err)
	}
	printMessage(os.Stdout, m, "")
}

func runLog(args []string) {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `rtnl-dump log - View a codec event log file

Usage:
  rtnl-dump log [flags] <file>

Flags:
`)
		fs.PrintDefaults()
	}

	direction := fs.String("direction", "", "Filter by direction (decode, encode)")
	category := fs.String("category", "", "Filter by category (MESSAGE, FALLBACK, TRUNCATION, RESOURCE)")
	pathPrefix := fs.String("path", "", "Filter by attribute path prefix")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	var filter log.Filter
	filter.PathPrefix = *pathPrefix
	switch strings.ToLower(*direction) {
	case "":
	case "decode":
		d := log.DirectionDecode
		filter.Direction = &d
	case "encode":
		d := log.DirectionEncode
		filter.Direction = &d
	default:
		fatalf("unknown direction %q", *direction)
	}
	if *category != "" {
		c, ok := parseCategory(*category)
		if !ok {
			fatalf("unknown category %q", *category)
		}
		filter.Category = &c
	}

	reader, err := log.NewFilteredReader(fs.Arg(0), filter)
	if err != nil {
		fatalf("opening log: %v", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			fatalf("reading log: %v", err)
		}
		printEvent(os.Stdout, event)
	}
}

func parseCategory(s string) (log.Category, bool) {
	for _, c := range []log.Category{
		log.CategoryMessage,
		log.CategoryFallback,
		log.CategoryTruncation,
		log.CategoryResource,
	} {
		if strings.EqualFold(s, c.String()) {
			return c, true
		}
	}
	return 0, false
}

func printEvent(w io.Writer, e log.Event) {
	fmt.Fprintf(w, "%s %-6s %-10s", e.Timestamp.Format("15:04:05.000000"), e.Direction, e.Category)
	if e.Path != "" {
		fmt.Fprintf(w, " path=%s", e.Path)
	}
	if e.Size != 0 {
		fmt.Fprintf(w, " size=%d", e.Size)
	}
	if e.Detail != "" {
		fmt.Fprintf(w, " detail=%s", e.Detail)
	}
	if e.Error != "" {
		fmt.Fprintf(w, " error=%q", e.Error)
	}
	fmt.Fprintln(w)
}

func printMessage(w io.Writer, m *rtnl.Message, indent string) {
	h := m.Header
	fmt.Fprintf(w, "%sheader: family=%d type=%d index=%d flags=%#x change=%#x",
		indent, h.Family, h.Type, h.Index, h.Flags, h.Change)
	if names := m.FlagNames(); len(names) > 0 {
		fmt.Fprintf(w, " <%s>", strings.Join(names, ","))
	}
	fmt.Fprintln(w)
	printTree(w, m.Attrs, indent+"  ")
}

func printTree(w io.Writer, tree nla.Tree, indent string) {
	for _, a := range tree {
		name := a.Name
		if name == "" {
			name = fmt.Sprintf("#%d", a.ID)
		}
		switch v := a.Value.(type) {
		case nla.Tree:
			fmt.Fprintf(w, "%s%s:\n", indent, name)
			printTree(w, v, indent+"  ")
		case *rtnl.Message:
			fmt.Fprintf(w, "%s%s:\n", indent, name)
			printMessage(w, v, indent+"  ")
		case rtnl.Counters:
			fmt.Fprintf(w, "%s%s:\n", indent, name)
			printCounters(w, v, indent+"  ")
		case []byte:
			fmt.Fprintf(w, "%s%s: 0x%s\n", indent, name, hex.EncodeToString(v))
		case string:
			fmt.Fprintf(w, "%s%s: %q\n", indent, name, v)
		default:
			fmt.Fprintf(w, "%s%s: %v\n", indent, name, v)
		}
	}
}

func printCounters(w io.Writer, counters rtnl.Counters, indent string) {
	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s%s: %d\n", indent, name, counters[name])
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
