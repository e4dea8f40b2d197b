// Command stldump prints a summary of an STL file, binary or ASCII.
//
//	stldump [flags] [file]
//
// With no file it reads standard input.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/jeffallen/stlmesh/debugreader"
	"github.com/jeffallen/stlmesh/stl"
)

type options struct {
	debug  bool
	dump   bool
	check  bool
	strict bool
}

func newCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "stldump [file]",
		Short: "Print triangle count, bounds and optionally every face of an STL file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			return run(r, cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "debug I/O")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "dump all triangles")
	cmd.Flags().BoolVar(&opts.check, "check", false, "check STL file for non-unit normals")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "reject malformed numbers and facets")
	return cmd
}

func run(r io.Reader, w io.Writer, opts options) error {
	if opts.debug {
		r = debugreader.NewReader(r, log.New(os.Stderr, "stldump: ", 0))
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	format := "ascii"
	if stl.IsBinary(data) {
		format = "binary"
	}

	d := stl.Decoder{Strict: opts.strict}
	m, err := d.Parse(data)
	if err != nil {
		return err
	}

	b := m.Bounds()
	fmt.Fprintf(w, "Format: %s\n", format)
	fmt.Fprintf(w, "Num triangles: %d\n", m.NumFaces())
	fmt.Fprintf(w, "From: %s\n", vec(b.Min))
	fmt.Fprintf(w, "  To: %s\n", vec(b.Max))

	for n := 0; n < m.NumFaces(); n++ {
		t := m.Face(n)
		if opts.check && !t.NormalIsUnit() {
			fmt.Fprintf(w, "Triangle %d normal vector: abs(%s) != 1\n", n, vec(t.Normal))
		}
		if opts.dump {
			fmt.Fprintf(w, "Triangle %d:\n", n)
			fmt.Fprintf(w, "  %s\n", vec(t.Normal))
			fmt.Fprintf(w, "  %s\n", vec(t.Vertex[0]))
			fmt.Fprintf(w, "  %s\n", vec(t.Vertex[1]))
			fmt.Fprintf(w, "  %s\n", vec(t.Vertex[2]))
		}
	}
	// ascii files can end with a facet that has the wrong number of vertices
	if rest := m.NumVertices() % 3; rest != 0 {
		fmt.Fprintf(w, "Trailing vertices: %d\n", rest)
	}
	return nil
}

func vec(v mgl32.Vec3) string {
	return fmt.Sprintf("(%g, %g, %g)", v[0], v[1], v[2])
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("stldump: ")
	if err := newCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}
