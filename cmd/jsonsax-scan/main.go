// Command jsonsax-scan streams a file through the jsonsax parser in fixed
// size chunks, printing the event trace as it goes. It exists to exercise
// the incremental-input and buffer-reallocation paths against something
// other than an in-memory unit test: a small -bufsize forces repeated
// Reallocate calls, and a small -chunk forces repeated ErrorUnexpectedEOF
// resumptions.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-jsonsax/jsonsax"
)

func main() {
	chunkSize := flag.Int("chunk", 64, "bytes of input to feed per read")
	bufSize := flag.Int("bufsize", 32, "starting scratch buffer size")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: jsonsax-scan [-chunk N] [-bufsize N] <file>")
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	defer f.Close()

	if err := scan(f, *chunkSize, *bufSize); err != nil {
		log.Fatal(err)
	}
}

func scan(r io.Reader, chunkSize, bufSize int) error {
	var ctx jsonsax.Context
	buf := make([]byte, bufSize)
	jsonsax.Initialize(&ctx, buf)

	var chunk []byte
	read, eof := 0, false

	for {
		if read == 0 && !eof {
			// A fresh backing array per read: Parse tells new input from a
			// repeat of the previous slice by its backing array.
			chunk = make([]byte, chunkSize)
			n, err := r.Read(chunk)
			read = n
			if err == io.EOF {
				eof = true
			} else if err != nil {
				return fmt.Errorf("read: %w", err)
			}
		}

		code := jsonsax.Parse(&ctx, chunk[:read])

		switch {
		case code == jsonsax.ErrorInsufficientMemory:
			bigger := make([]byte, len(buf)*2)
			if err := jsonsax.Reallocate(&ctx, bigger); err != nil {
				return err
			}
			log.Printf("grew scratch buffer to %d bytes", len(bigger))
			buf = bigger
			continue

		case code == jsonsax.ErrorUnexpectedEOF:
			if eof {
				return fmt.Errorf("unexpected end of input at line %d, column %d", ctx.Line, ctx.Column)
			}
			read = 0
			continue

		case code.IsError():
			return ctx.LastError()

		case code == jsonsax.EndOfDocument:
			return nil
		}

		printEvent(code, &ctx)
	}
}

func printEvent(code jsonsax.Code, ctx *jsonsax.Context) {
	prefix := ""
	if ctx.Name != nil {
		prefix = fmt.Sprintf("%q: ", ctx.Name)
	}

	switch code {
	case jsonsax.Name:
		// The Value/ObjectBegin/ArrayBegin event that follows prints the
		// name; nothing to show yet on its own.
	case jsonsax.ObjectBegin:
		fmt.Printf("%*s%s{\n", ctx.Depth*2, "", prefix)
	case jsonsax.ObjectEnd:
		fmt.Printf("%*s}\n", (ctx.Depth)*2, "")
	case jsonsax.ArrayBegin:
		fmt.Printf("%*s%s[\n", ctx.Depth*2, "", prefix)
	case jsonsax.ArrayEnd:
		fmt.Printf("%*s]\n", (ctx.Depth)*2, "")
	case jsonsax.Value:
		fmt.Printf("%*s%s%s\n", ctx.Depth*2, "", prefix, formatValue(ctx))
	}
}

func formatValue(ctx *jsonsax.Context) string {
	switch ctx.ValueType {
	case jsonsax.TypeNull:
		return "null"
	case jsonsax.TypeInteger:
		return fmt.Sprintf("%d", ctx.IntegerValue)
	case jsonsax.TypeFloat:
		return fmt.Sprintf("%g", ctx.FloatValue)
	case jsonsax.TypeString:
		return fmt.Sprintf("%q", ctx.StringValue)
	case jsonsax.TypeBoolean:
		return fmt.Sprintf("%t", ctx.BoolValue)
	}
	return "<?>"
}
