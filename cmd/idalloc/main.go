package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rueian/idalloc/pkg/config"
	"github.com/rueian/idalloc/pkg/server"
	"google.golang.org/grpc"
)

func main() {
	w := flag.CommandLine.Output()

	flag.Usage = func() {
		fmt.Fprintf(w, "Usage: %s [-addr=host:port] <action> [<args>]\n", os.Args[0])
		fmt.Fprintf(w, "\n")
		fmt.Fprintf(w, "Action and args must be one of:\n")
		fmt.Fprintf(w, "  - allocate\n")
		fmt.Fprintf(w, "  - free <id>\n")
		fmt.Fprintf(w, "  - dump\n")
		fmt.Fprintf(w, "  - can-allocate\n")
		fmt.Fprintf(w, "  - acquire <key>\n")
		fmt.Fprintf(w, "  - release <key>\n")
		fmt.Fprintf(w, "\n")
		fmt.Fprintf(w, "Flags:\n")
		flag.PrintDefaults()
	}

	conf, err := config.GetClient()
	if err != nil {
		fmt.Fprintf(w, "Error reading environment: %v\n", err)
		os.Exit(1)
	}

	addr := flag.String("addr", conf.Addr, "allocator address")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}
	ctx := context.Background()

	ctxDial, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	conn, err := grpc.DialContext(ctxDial, *addr, grpc.WithInsecure(), grpc.WithBlock())
	if err != nil {
		fmt.Fprintf(w, "Error dialing allocator: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	client := server.NewClient(conn)
	ctx, cancel = context.WithTimeout(ctx, *timeout)
	defer cancel()

	action := flag.Arg(0)
	args := flag.NArg() - 1

	switch action {
	case "allocate", "a":
		usage(args == 0, "allocate")
		id, err := client.Allocate(ctx)
		check(err)
		fmt.Println(id)

	case "free", "f":
		usage(args == 1, "free <id>")
		id, err := strconv.ParseUint(flag.Arg(1), 10, 64)
		if err != nil {
			fmt.Fprintf(w, "Invalid id: %v\n", err)
			os.Exit(1)
		}
		check(client.Free(ctx, id))

	case "dump", "d":
		usage(args == 0, "dump")
		dump, err := client.Dump(ctx)
		check(err)
		fmt.Println(dump)

	case "can-allocate":
		usage(args == 0, "can-allocate")
		ok, err := client.CanAllocate(ctx)
		check(err)
		fmt.Println(ok)

	case "acquire":
		usage(args == 1, "acquire <key>")
		id, err := client.Acquire(ctx, flag.Arg(1))
		check(err)
		fmt.Println(id)

	case "release":
		usage(args == 1, "release <key>")
		check(client.Release(ctx, flag.Arg(1)))

	default:
		flag.Usage()
		os.Exit(1)
	}
}

func usage(ok bool, action string) {
	if !ok {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s %s\n", os.Args[0], action)
		os.Exit(1)
	}
}

func check(err error) {
	if err != nil {
		fmt.Fprintf(flag.CommandLine.Output(), "Error: %v\n", err)
		os.Exit(1)
	}
}
