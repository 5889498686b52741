package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gltfviewer/engine/asset"
	"gltfviewer/internal/log"
)

func main() {
	var (
		root    = flag.String("root", "assets", "Asset root relative sources resolve against.")
		quiet   = flag.Bool("q", false, "Print only the summary line.")
		verbose = flag.Bool("v", false, "Log import progress to stderr.")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fatalf("usage: gltfinfo [-root dir] [-q] [-v] path/to/scene.gltf[#SceneN]")
	}

	logger := log.Nop()
	if *verbose {
		l, err := log.New(true, true, "")
		if err != nil {
			fatalf("log: %v", err)
		}
		logger = l
	}
	defer logger.Sync()

	srv := asset.NewServer(*root, asset.WithLogger(logger.Named("asset")))
	defer srv.Close()

	h := srv.Load(flag.Arg(0))
	srv.Wait()
	srv.Update()

	g, ok := srv.Get(h)
	if !ok {
		fatalf("%s: %v", h.ID(), h.Err())
	}
	if err := describe(os.Stdout, g, *quiet); err != nil {
		fatalf("write: %v", err)
	}
}

func describe(w io.Writer, g *asset.SceneGraph, quiet bool) error {
	nodes, meshes := 0, 0
	var b strings.Builder
	g.Walk(func(idx, depth int, n *asset.Node) {
		nodes++
		meshes += len(n.Meshes)
		if quiet {
			return
		}
		tris := 0
		for _, m := range n.Meshes {
			tris += m.Triangles()
		}
		name := n.Name
		if name == "" {
			name = fmt.Sprintf("node%d", idx)
		}
		fmt.Fprintf(&b, "%s%s", strings.Repeat("  ", depth), name)
		if len(n.Meshes) > 0 {
			fmt.Fprintf(&b, "  [%d mesh, %d tris]", len(n.Meshes), tris)
		}
		b.WriteByte('\n')
	})
	fmt.Fprintf(&b, "%s scene %q: %d nodes, %d meshes, %d triangles\n",
		g.Doc.Path, g.Scene.Name, nodes, meshes, g.Triangles())
	_, err := io.WriteString(w, b.String())
	return err
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
