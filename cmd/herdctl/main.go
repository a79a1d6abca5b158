package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	herdlib "github.com/herdstore/herdstore/clients/library"
)

const usage = `Usage: herdctl [-config path] <command> [args]

Commands:
  create <name> <size-bytes>        create a new VDI
  snapshot <name> <tag>             freeze the live head of <name> under <tag>
  clone <src> <tag> <dst>           clone the snapshot <src>:<tag> into <dst>
`

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to YAML client config")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := herdlib.DefaultConfig()
	if configPath != "" {
		loaded, err := herdlib.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "herdctl: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	ctx := context.Background()
	client, err := herdlib.NewHerdClient(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "herdctl: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	if err := run(ctx, client, args); err != nil {
		fmt.Fprintf(os.Stderr, "herdctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client *herdlib.HerdClient, args []string) error {
	switch args[0] {
	case "create":
		if len(args) != 3 {
			return fmt.Errorf("create needs <name> <size-bytes>")
		}
		size, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid size %q: %w", args[2], err)
		}
		if err := client.CreateVDI(ctx, args[1], size); err != nil {
			return err
		}
		fmt.Printf("created VDI %s (%d bytes)\n", args[1], size)
		return nil

	case "snapshot":
		if len(args) != 3 {
			return fmt.Errorf("snapshot needs <name> <tag>")
		}
		if err := client.SnapshotVDI(ctx, args[1], args[2]); err != nil {
			return err
		}
		fmt.Printf("snapshotted %s as %s\n", args[1], args[2])
		return nil

	case "clone":
		if len(args) != 4 {
			return fmt.Errorf("clone needs <src> <tag> <dst>")
		}
		if err := client.CloneVDI(ctx, args[1], args[2], args[3]); err != nil {
			return err
		}
		fmt.Printf("cloned %s:%s into %s\n", args[1], args[2], args[3])
		return nil
	}
	return fmt.Errorf("unknown command %q", args[0])
}
