package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hitcli/hit/packages/config"
	"github.com/hitcli/hit/packages/cookie"
	hithttp "github.com/hitcli/hit/packages/http"
	"github.com/hitcli/hit/packages/output"
)

var getCmd = &cobra.Command{
	Use:   "get <url>",
	Short: "Send a GET request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(cmd, "GET", args[0])
	},
}

var postCmd = &cobra.Command{
	Use:   "post <url>",
	Short: "Send a POST request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(cmd, "POST", args[0])
	},
}

var putCmd = &cobra.Command{
	Use:   "put <url>",
	Short: "Send a PUT request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(cmd, "PUT", args[0])
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <url>",
	Short: "Send a DELETE request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(cmd, "DELETE", args[0])
	},
}

var patchCmd = &cobra.Command{
	Use:   "patch <url>",
	Short: "Send a PATCH request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(cmd, "PATCH", args[0])
	},
}

var headCmd = &cobra.Command{
	Use:   "head <url>",
	Short: "Send a HEAD request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(cmd, "HEAD", args[0])
	},
}

// exitFunc is swapped out by tests that exercise failure paths.
var exitFunc = defaultExit

// send runs the whole pipeline for one request: normalize flags, build the
// request, dispatch it, render the response and update the cookie jar.
func send(cmd *cobra.Command, method, target string) error {
	fileCfg, err := config.LoadFile("")
	if err != nil {
		fileCfg = &config.FileConfig{}
	}

	noColor := noColorFlag || fileCfg.GetNoColor()
	formatter := output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithErrWriter(cmd.ErrOrStderr()),
		output.WithVerbose(verboseFlag),
		output.WithNoColor(noColor),
		output.WithYAML(yamlFlag),
	)
	if err != nil {
		formatter.FormatWarning("ignoring config file: %v", err)
	}

	cfg, err := normalize(method, target, fileCfg)
	if err != nil {
		formatter.FormatError(err)
		exitFunc(ExitConfigError)
		return nil
	}

	timeoutStr := timeoutFlag
	if !cmd.Flags().Changed("timeout") && fileCfg.Timeout != "" {
		timeoutStr = fileCfg.Timeout
	}
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		formatter.FormatError(fmt.Errorf("invalid timeout value %q: %w", timeoutStr, err))
		exitFunc(ExitConfigError)
		return nil
	}

	builder := hithttp.NewBuilder(version)
	builder.SetWarnFunc(formatter.FormatWarning)

	req, err := builder.Build(cfg)
	if err != nil {
		formatter.FormatError(err)
		exitFunc(ExitConfigError)
		return nil
	}

	if verboseFlag {
		formatter.FormatRequest(req, cfg.Proxy)
	}

	clientOpts := []hithttp.ClientOption{
		hithttp.WithTimeout(timeout),
		hithttp.WithValidateSSL(!insecureFlag && !fileCfg.GetInsecure()),
	}
	if cfg.Proxy != nil {
		clientOpts = append(clientOpts, hithttp.WithProxy(cfg.Proxy))
	}
	if len(fileCfg.Headers) > 0 {
		clientOpts = append(clientOpts, hithttp.WithDefaultHeaders(fileCfg.Headers))
	}
	client := hithttp.NewClient(clientOpts...)

	resp, err := client.Do(req)
	if err != nil {
		formatter.FormatError(err)
		exitFunc(ExitTransportError)
		return nil
	}

	if cfg.OutputFile != "" {
		saveOpts := []output.SaveOption{}
		if !noColor {
			saveOpts = append(saveOpts, output.WithProgress(resp.ContentLength))
		}
		written, saveErr := output.SaveBody(resp.Stream, cfg.OutputFile, saveOpts...)
		resp.Stream.Close()
		if saveErr != nil {
			formatter.FormatError(saveErr)
		} else {
			formatter.FormatSaved(cfg.OutputFile, written)
		}
	} else {
		formatter.FormatResponse(resp)
	}

	if cfg.CookieFile != "" {
		if setCookies := resp.SetCookies(); len(setCookies) > 0 {
			if saveErr := cookie.Save(cfg.CookieFile, setCookies); saveErr != nil {
				formatter.FormatError(fmt.Errorf("cannot save cookies: %w", saveErr))
			}
		}
	}

	return nil
}

// normalize folds the raw flag values and file-config defaults into a
// RequestConfig. All input validation happens here, before any network work.
func normalize(method, target string, fileCfg *config.FileConfig) (*config.RequestConfig, error) {
	cfg := &config.RequestConfig{
		Method:          method,
		URL:             config.NormalizeURL(target),
		Headers:         config.ParseHeaders(headerFlags),
		ContentTypeHint: typeFlag,
		OutputFile:      outputFlag,
		CookieFile:      cookieFlag,
	}
	if cfg.CookieFile == "" {
		cfg.CookieFile = fileCfg.CookieFile
	}

	switch {
	case dataFileFlag != "":
		body, err := config.ParseDataFile(dataFileFlag)
		if err != nil {
			return nil, err
		}
		cfg.Body = body
	case dataFlag != "":
		cfg.Body = config.ParseData(dataFlag)
	}

	proxyRaw := proxyFlag
	if proxyRaw == "" {
		proxyRaw = fileCfg.Proxy
	}
	proxy, err := config.ParseProxy(proxyRaw)
	if err != nil {
		return nil, err
	}
	cfg.Proxy = proxy

	return cfg, nil
}
