// Command validate_wsdl parses every WSDL document under a directory and
// reports whether each one can be read and bound.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/soapbind-project/soapbind-go/pkg/binding"
	"github.com/soapbind-project/soapbind-go/pkg/wsdl"
	"github.com/soapbind-project/soapbind-go/pkg/wsdlmsg"
)

func loadWSDLFiles(dir string) []string {
	var wsdlFiles []string
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			fmt.Println(err)
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".wsdl") {
			wsdlFiles = append(wsdlFiles, path)
		}
		return nil
	})
	return wsdlFiles
}

// validateWSDLs parses each document and resolves every operation's message
// parts, returning the number of valid files.
func validateWSDLs(dir string) int {
	fmt.Println("Validating WSDL files")
	var validFiles int
	for _, wsdlFile := range loadWSDLFiles(dir) {
		if errs := validateFile(wsdlFile); len(errs) > 0 {
			fmt.Printf("FAIL %s\n", wsdlFile)
			for _, err := range errs {
				fmt.Printf("\t- %v\n", err)
			}
			continue
		}
		fmt.Printf("OK   %s\n", wsdlFile)
		validFiles++
	}
	return validFiles
}

func validateFile(path string) []error {
	defs, err := wsdl.Parse(path)
	if err != nil {
		return []error{err}
	}

	type boundMessage struct {
		label string
		msg   *wsdlmsg.Message
	}

	var errs []error
	binder := binding.NewBinder(defs.Schemas())
	for _, name := range defs.OperationNames() {
		op := defs.Operation(name)
		for _, entry := range []boundMessage{
			{name + " input", op.Input},
			{name + " output", op.Output},
			{name + " fault", op.Fault},
		} {
			if entry.msg == nil {
				continue
			}
			if _, err := binder.ResolveAll(entry.msg); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", entry.label, err))
			}
		}
	}
	return errs
}

func main() {
	dir := flag.String("d", "", "directory holding WSDL files")
	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "usage: validate_wsdl -d <directory>")
		os.Exit(2)
	}

	valid := validateWSDLs(*dir)
	fmt.Printf("Successfully validated %d files.\n", valid)
}
