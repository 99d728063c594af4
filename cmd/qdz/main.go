// qdz: drive the Quadrate compression operations from the command line.
//
// One-shot mode pipes a payload through a single operation:
//
//	qdz gzip < in.txt > out.gz
//	qdz gunzip out.gz > in.txt
//	QDZ_LEVEL=9 qdz gzip_level < in.txt > out.gz
//
// REPL mode (`qdz repl`) keeps one context alive so operations can be
// chained against the operand stack interactively.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	qdcompress "github.com/quadrate-language/compress"
)

const (
	appName     = "qdz"
	historyFile = ".qdz_history"
	prompt      = "qdz> "
)

type Config struct {
	// Level feeds gzip_level in one-shot mode and the REPL's `level` shortcut.
	Level int `yaml:"level" env:"QDZ_LEVEL" env-default:"6"`
	// MaxOutput caps decompressed size in bytes; 0 disables the cap.
	MaxOutput int    `yaml:"max-output" env:"QDZ_MAX_OUTPUT" env-default:"0"`
	LogLevel  string `yaml:"log-level" env:"QDZ_LOG_LEVEL" env-default:"info"`
}

func loadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.Wrap(err, "read environment config")
	}
	return &cfg, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: %s [-config file.yaml] <operation> [input-file]
       %s repl

operations: gzip, gzip_level, gunzip, deflate, inflate
Payload is read from the input file or stdin; the result goes to stdout.
`, appName, appName)
}

func main() {
	configPath := flag.String("config", "", "path to YAML config (environment overrides)")
	flag.Usage = usage
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if lvl, perr := logrus.ParseLevel(cfg.LogLevel); perr == nil {
		log.SetLevel(lvl)
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	if args[0] == "repl" {
		runREPL(cfg, log)
		return
	}

	if err := runOnce(cfg, args[0], args[1:]); err != nil {
		log.WithField("op", args[0]).Error(err)
		os.Exit(1)
	}
}

func runOnce(cfg *Config, op string, args []string) error {
	fn, ok := qdcompress.Ops()[op]
	if !ok {
		return errors.Errorf("unknown operation %q", op)
	}

	var in []byte
	var err error
	if len(args) > 0 {
		in, err = os.ReadFile(args[0])
		if err != nil {
			return errors.Wrapf(err, "read %s", args[0])
		}
	} else {
		in, err = io.ReadAll(os.Stdin)
		if err != nil {
			return errors.Wrap(err, "read stdin")
		}
	}

	ctx := qdcompress.NewContext()
	ctx.MaxOutput = cfg.MaxOutput
	ctx.Stack.Push(qdcompress.Str(string(in)))
	if op == "gzip_level" {
		ctx.Stack.Push(qdcompress.Int(int64(cfg.Level)))
	}

	if err := fn(ctx); err != nil {
		return err
	}

	ctx.Stack.Pop() // status (always OK when the call returned nil)
	result, _ := ctx.Stack.Pop()
	if _, err := os.Stdout.WriteString(result.Data.(string)); err != nil {
		return errors.Wrap(err, "write stdout")
	}
	return nil
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), historyFile)
	}
	return filepath.Join(home, historyFile)
}

func runREPL(cfg *Config, log *logrus.Logger) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	hist := historyPath()
	if f, err := os.Open(hist); err == nil {
		_, _ = line.ReadHistory(f)
		_ = f.Close()
	}
	saveHistory := func() {
		f, err := os.Create(hist)
		if err != nil {
			log.Debugf("history not saved: %v", err)
			return
		}
		_, _ = line.WriteHistory(f)
		_ = f.Close()
	}
	defer saveHistory()

	ctx := qdcompress.NewContext()
	ctx.MaxOutput = cfg.MaxOutput
	ops := qdcompress.Ops()

	fmt.Printf("qdz %s — Ctrl+D exits, :quit to exit.\n", qdcompress.Version)
	fmt.Println(`commands: push <text>, pushi <int>, stack, pop, err, or an operation name`)

	for {
		input, err := line.Prompt(prompt)
		if err != nil {
			// io.EOF or liner.ErrPromptAborted
			fmt.Println()
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		cmd, arg := input, ""
		if i := strings.IndexByte(input, ' '); i >= 0 {
			cmd, arg = input[:i], strings.TrimSpace(input[i+1:])
		}

		switch cmd {
		case ":quit":
			return

		case "push":
			ctx.Stack.Push(qdcompress.Str(arg))
			fmt.Printf("pushed %d bytes\n", len(arg))

		case "pushi":
			n, perr := strconv.ParseInt(arg, 10, 64)
			if perr != nil {
				fmt.Printf("pushi: %v\n", perr)
				continue
			}
			ctx.Stack.Push(qdcompress.Int(n))

		case "stack":
			fmt.Printf("depth %d, top %s\n", ctx.Stack.Len(), ctx.Stack.Top())

		case "pop":
			if v, ok := ctx.Stack.Pop(); ok {
				fmt.Println(v)
			} else {
				fmt.Println("stack is empty")
			}

		case "err":
			if e := ctx.LastError(); e != nil {
				fmt.Printf("status %d (%s): %s\n", e.Status, e.Status, e.Error())
			} else {
				fmt.Println("no error recorded")
			}

		default:
			fn, ok := ops[cmd]
			if !ok {
				fmt.Printf("unknown command %q\n", cmd)
				continue
			}
			if err := fn(ctx); err != nil {
				fmt.Printf("status %d: %v\n", qdcompress.StatusOf(err), err)
				continue
			}
			ctx.Stack.Pop() // status
			fmt.Printf("ok, result on stack: %s\n", ctx.Stack.Top())
		}
	}
}
