// soapbind CLI - invoke SOAP operations described by a WSDL document
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/soapbind-project/soapbind-go/internal/config"
	"github.com/soapbind-project/soapbind-go/pkg/client"
	"github.com/soapbind-project/soapbind-go/pkg/soap"
	"github.com/soapbind-project/soapbind-go/pkg/transport"
	"github.com/soapbind-project/soapbind-go/pkg/wsse"
)

// Build-time variable set via ldflags
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "operations":
		err = runOperations(os.Args[2:])
	case "describe":
		err = runDescribe(os.Args[2:])
	case "invoke":
		err = runInvoke(os.Args[2:])
	case "version":
		fmt.Println(version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		var fault *soap.Fault
		if errors.As(err, &fault) {
			fmt.Fprintf(os.Stderr, "soap fault [%s]: %s\n", fault.Code, fault.Reason)
			if fault.Detail != "" {
				fmt.Fprintf(os.Stderr, "detail: %s\n", fault.Detail)
			}
		} else {
			fmt.Fprintf(os.Stderr, "soapbind: %v\n", err)
		}
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: soapbind <command> [flags] [operation]

Invoke SOAP operations described by a WSDL document.

Commands:
  operations   List the operations of a service
  describe     Show an operation's parts and sample input
  invoke       Call an operation and print the reply parameters
  version      Show version information

Flags common to all commands:
      -wsdl      WSDL document path
      -profile   Client profile YAML path (wsdl, endpoint, security, ...)
      -endpoint  Override the service endpoint

Examples:
  soapbind operations -wsdl service.wsdl
  soapbind describe -wsdl service.wsdl GetPet
  soapbind invoke -wsdl service.wsdl -params '{"parameters":{"id":7}}' GetPet
  soapbind invoke -profile petstore.yaml -params @input.json GetPet
`)
}

// clientOptions are the flags shared by every command
type clientOptions struct {
	wsdlPath string
	profile  string
	endpoint string
}

func addClientFlags(fs *flag.FlagSet, opts *clientOptions) {
	fs.StringVar(&opts.wsdlPath, "wsdl", "", "WSDL document path")
	fs.StringVar(&opts.profile, "profile", "", "client profile YAML path")
	fs.StringVar(&opts.endpoint, "endpoint", "", "override the service endpoint")
}

func buildClient(opts *clientOptions) (*client.Client, error) {
	if opts.profile != "" {
		profile, err := config.Load(opts.profile)
		if err != nil {
			return nil, err
		}
		return clientFromProfile(profile, opts)
	}

	if opts.wsdlPath == "" {
		return nil, fmt.Errorf("either -wsdl or -profile is required")
	}
	c, err := client.New(opts.wsdlPath)
	if err != nil {
		return nil, err
	}
	if opts.endpoint != "" {
		c.SetEndpoint(opts.endpoint)
	}
	return c, nil
}

func clientFromProfile(profile *config.Profile, opts *clientOptions) (*client.Client, error) {
	c, err := client.New(profile.WSDL)
	if err != nil {
		return nil, err
	}

	soapVersion, err := profile.Version()
	if err != nil {
		return nil, err
	}
	if soapVersion != "" {
		c.SetVersion(soapVersion)
	}

	httpTransport := transport.NewHTTPTransport()
	timeout, err := profile.RequestTimeout()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		httpTransport.SetTimeout(timeout)
	}
	for name, value := range profile.Headers {
		httpTransport.SetHeader(name, value)
	}
	c.SetTransport(httpTransport)

	if sec := profile.Security; sec != nil {
		security := wsse.NewSecurity()
		if sec.Timestamp {
			security.UseTimestamp()
		}
		token := wsse.NewUsernameToken(sec.Username, sec.Password)
		if sec.Digest {
			token.UseDigest()
		}
		security.AddToken(token)
		c.SetSecurity(security)
	}

	if profile.Endpoint != "" {
		c.SetEndpoint(profile.Endpoint)
	}
	// command line beats the profile
	if opts.endpoint != "" {
		c.SetEndpoint(opts.endpoint)
	}
	return c, nil
}

// runOperations handles the operations command
func runOperations(args []string) error {
	fs := flag.NewFlagSet("operations", flag.ContinueOnError)
	opts := &clientOptions{}
	addClientFlags(fs, opts)
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := buildClient(opts)
	if err != nil {
		return err
	}

	defs := c.Definitions()
	fmt.Printf("Service: %s (SOAP %s)\n", defs.TargetNamespace(), defs.SOAPVersion())
	if defs.Endpoint() != "" {
		fmt.Printf("Endpoint: %s\n", defs.Endpoint())
	}
	fmt.Println("Operations:")
	for _, name := range c.OperationNames() {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

// runDescribe handles the describe command
func runDescribe(args []string) error {
	fs := flag.NewFlagSet("describe", flag.ContinueOnError)
	opts := &clientOptions{}
	addClientFlags(fs, opts)
	jsonOutput := fs.Bool("json", false, "print the description as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf(`operation name is required

Usage: soapbind describe [flags] <operation>`)
	}

	c, err := buildClient(opts)
	if err != nil {
		return err
	}
	desc, err := c.Describe(fs.Arg(0))
	if err != nil {
		return err
	}

	if *jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(desc)
	}

	fmt.Printf("Operation: %s\n", desc.Name)
	fmt.Printf("  SOAP action: %q\n", desc.SOAPAction)
	fmt.Printf("  SOAP version: %s\n", desc.SOAPVersion)
	printParts("Input parts", desc.Input)
	printParts("Output parts", desc.Output)

	sample, err := json.MarshalIndent(desc.SampleInput, "    ", "  ")
	if err != nil {
		return fmt.Errorf("failed to render sample input: %w", err)
	}
	fmt.Printf("  Sample input:\n    %s\n", sample)
	return nil
}

func printParts(label string, parts []client.PartDescription) {
	if len(parts) == 0 {
		return
	}
	fmt.Printf("  %s:\n", label)
	for _, part := range parts {
		if part.Namespace == "" {
			fmt.Printf("    %s -> %s\n", part.Name, part.WireName)
			continue
		}
		fmt.Printf("    %s -> {%s}%s\n", part.Name, part.Namespace, part.WireName)
	}
}

// runInvoke handles the invoke command
func runInvoke(args []string) error {
	fs := flag.NewFlagSet("invoke", flag.ContinueOnError)
	opts := &clientOptions{}
	addClientFlags(fs, opts)
	paramsArg := fs.String("params", "", "input parameters as JSON, or @file to read them from a file")
	timeoutArg := fs.Duration("timeout", 0, "overall call timeout")
	pretty := fs.Bool("pretty", true, "indent the JSON output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf(`operation name is required

Usage: soapbind invoke [flags] <operation>`)
	}
	operation := fs.Arg(0)

	params, err := readParams(*paramsArg)
	if err != nil {
		return err
	}

	c, err := buildClient(opts)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if *timeoutArg > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeoutArg)
		defer cancel()
	}

	start := time.Now()
	result, err := c.Invoke(ctx, operation, params)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%s completed in %s\n", operation, time.Since(start).Round(time.Millisecond))

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}

// readParams parses the -params value, following an @file reference
func readParams(arg string) (client.Params, error) {
	if arg == "" {
		return client.Params{}, nil
	}

	data := []byte(arg)
	if strings.HasPrefix(arg, "@") {
		var err error
		data, err = os.ReadFile(arg[1:])
		if err != nil {
			return nil, fmt.Errorf("failed to read params file: %w", err)
		}
	}

	var params client.Params
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("invalid params JSON: %w", err)
	}
	return params, nil
}
