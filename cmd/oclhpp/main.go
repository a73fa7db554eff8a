package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/macropower/oclhpp/internal/cli"
)

const (
	cmdName = "oclhpp"

	shortDesc = "Generate C++ headers embedding OpenCL kernels."
	longDesc  = `Generate C++ headers embedding OpenCL kernels.

Every <module>_<name>.cl file in <kernel_dir> is minified and written to
<header_dir>/<module>_<name>_ocl.hpp. Each header defines

  const cv::ocl::ProgramSource& <module>_<name>_ocl();

which returns the kernel as an OpenCV program source.
`
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := cli.Execute(ctx, cli.NewRootCmd(cmdName, shortDesc, longDesc), os.Args[0])

	stop()
	os.Exit(code)
}
