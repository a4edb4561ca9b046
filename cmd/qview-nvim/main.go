package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"dabbertorres.dev/qview"
	"github.com/neovim/go-client/nvim"
	"github.com/neovim/go-client/nvim/plugin"
)

func main() {
	var cfg qview.Config
	if err := qview.LoadConfig(qview.DefaultConfigFile, true, &cfg); err != nil {
		fmt.Println(err)
		return
	}

	state := pluginState{
		db:           qview.New(&cfg),
		displayBuf:   -1,
		displayWin:   -1,
		outputBuf:    -1,
		outputWin:    -1,
		displayCache: make(map[string][]schemaState),
	}
	defer state.db.Close()

	plugin.Main(func(p *plugin.Plugin) error {
		p.HandleFunction(listConnectionsCompletion(&state))
		p.HandleFunction(complete(&state))
		p.HandleCommand(listConnections(&state))
		p.HandleCommand(listSchemas(&state))
		p.HandleCommand(listTables(&state))
		p.HandleCommand(describeTable(&state))
		p.HandleCommand(switchConnection(&state))
		p.HandleCommand(refreshCatalog(&state))
		p.HandleCommand(validateStatement(&state))
		p.HandleCommand(runQuery(&state))
		return nil
	})
}

func listConnectionsCompletion(state *pluginState) (*plugin.FunctionOptions, func(*nvim.Nvim, []interface{}) (string, error)) {
	opts := &plugin.FunctionOptions{
		Name: "QVConnectionsF",
	}
	return opts, func(*nvim.Nvim, []interface{}) (string, error) {
		names, _ := state.db.ListConnections()
		return strings.Join(names, "\n") + "\n", nil
	}
}

func listConnections(state *pluginState) (*plugin.CommandOptions, func(*nvim.Nvim) error) {
	opts := &plugin.CommandOptions{
		Name:  "QVConnections",
		NArgs: "0",
	}
	return opts, func(api *nvim.Nvim) error {
		names, _ := state.db.ListConnections()
		return api.WriteOut(strings.Join(names, "\n") + "\n")
	}
}

func listSchemas(state *pluginState) (*plugin.CommandOptions, func(*nvim.Nvim) error) {
	opts := &plugin.CommandOptions{
		Name:  "QVSchemas",
		NArgs: "0",
	}

	return opts, func(api *nvim.Nvim) error {
		schemas, err := state.db.ListSchemas()
		if err != nil {
			return err
		}
		return api.WriteOut(strings.Join(schemas, "\n") + "\n")
	}
}

func listTables(state *pluginState) (*plugin.CommandOptions, func(*nvim.Nvim, []string) error) {
	opts := &plugin.CommandOptions{
		Name:  "QVTables",
		NArgs: "*",
	}

	return opts, func(api *nvim.Nvim, args []string) error {
		var tables []string
		switch len(args) {
		case 0:
			var err error
			tables, err = state.db.ListTables("")
			if err != nil {
				return err
			}

		case 1:
			var err error
			tables, err = state.db.ListTables(args[0])
			if err != nil {
				return err
			}

		default:
			for _, schema := range args {
				schemaTables, err := state.db.ListTables(schema)
				if err != nil {
					return err
				}

				// prefix with schema names
				for i, t := range schemaTables {
					schemaTables[i] = schema + "." + t
				}
				tables = append(tables, schemaTables...)
			}
		}
		return api.WriteOut(strings.Join(tables, "\n") + "\n")
	}
}

func describeTable(state *pluginState) (*plugin.CommandOptions, func(*nvim.Nvim, []string) error) {
	opts := &plugin.CommandOptions{
		Name:  "QVDescribe",
		NArgs: "1",
	}
	return opts, func(api *nvim.Nvim, args []string) error {
		table := strings.TrimSpace(args[0])
		schema, err := state.db.DescribeTable(table)
		if err != nil {
			return err
		}

		var sb strings.Builder
		writer := tabwriter.NewWriter(&sb, 2, 2, 1, ' ', tabwriter.Debug)
		for _, col := range schema.Columns {
			fmt.Fprintf(writer, " %s\t %s\t %s\n", col.Name, col.Type, strings.Join(col.Attrs, "; "))
		}
		writer.Flush()
		return api.WriteOut(sb.String())
	}
}

func switchConnection(state *pluginState) (*plugin.CommandOptions, func(*nvim.Nvim, []string) error) {
	opts := &plugin.CommandOptions{
		Name:     "QVConnect",
		NArgs:    "1",
		Complete: "custom,QVConnectionsF",
	}
	return opts, func(api *nvim.Nvim, args []string) error {
		if err := state.db.SwitchConnection(strings.TrimSpace(args[0]), passwordPrompt(api)); err != nil {
			api.WritelnErr(fmt.Sprintf("failed to connect to '%s': %v", args[0], err))
			return err
		}

		autoDisplay := true
		_ = api.Var("qview_auto_display_schema", &autoDisplay)

		if autoDisplay {
			if err := state.displaySchemas(api, true); err != nil {
				return err
			}
		}

		api.WriteOut(fmt.Sprintf("connected to '%s'!\n", args[0]))
		return nil
	}
}

func refreshCatalog(state *pluginState) (*plugin.CommandOptions, func(*nvim.Nvim) error) {
	opts := &plugin.CommandOptions{
		Name:  "QVRefresh",
		NArgs: "0",
	}
	return opts, func(api *nvim.Nvim) error {
		if _, err := state.db.RefreshCatalog(); err != nil {
			return err
		}
		return state.displaySchemas(api, true)
	}
}

func validateStatement(state *pluginState) (*plugin.CommandOptions, func(*nvim.Nvim, [2]int) error) {
	opts := &plugin.CommandOptions{
		Name:  "QVValidate",
		NArgs: "0",
		Range: "%",
		Addr:  "lines",
		Bar:   true,
	}
	return opts, func(api *nvim.Nvim, bufRange [2]int) error {
		buffer, err := api.CurrentBuffer()
		if err != nil {
			return err
		}

		lines, err := api.BufferLines(buffer, bufRange[0]-1, bufRange[1], false)
		if err != nil {
			return err
		}

		statement := string(bytes.Join(lines, []byte{'\n'}))

		columns, err := state.db.Validate(context.Background(), statement)
		if err != nil {
			var sqlErr *qview.SQLError
			if errors.As(err, &sqlErr) {
				api.WritelnErr("invalid: " + sqlErr.Error())
				return nil
			}
			return err
		}

		if len(columns) == 0 {
			return api.WriteOut("ok\n")
		}
		return api.WriteOut("ok: " + strings.Join(columns, ", ") + "\n")
	}
}

func runQuery(state *pluginState) (*plugin.CommandOptions, func(*nvim.Nvim, [2]int) error) {
	opts := &plugin.CommandOptions{
		Name:  "QVRun",
		NArgs: "0",
		Range: "%",
		Addr:  "lines",
		Bar:   true,
	}
	return opts, func(api *nvim.Nvim, bufRange [2]int) error {
		// grab the query
		queryBuffer, err := api.CurrentBuffer()
		if err != nil {
			return err
		}

		queryLines, err := api.BufferLines(queryBuffer, bufRange[0]-1, bufRange[1], false)
		if err != nil {
			return err
		}

		query := string(bytes.Join(queryLines, []byte{'\n'}))

		// run it!
		result, err := state.db.Query(query)
		if err != nil {
			return err
		}

		if result == nil || len(result.Columns) == 0 {
			return api.WriteOut("no results\n")
		}

		// format it!
		marks := make([]string, len(result.Columns))
		for i := range marks {
			marks[i] = " %v"
		}
		printFmt := strings.Join(marks, "\t") + "\n"

		var sb strings.Builder
		writer := tabwriter.NewWriter(&sb, 2, 2, 1, ' ', tabwriter.Debug)

		colNames := make([]interface{}, len(result.Columns))
		for i, col := range result.Columns {
			colNames[i] = col
		}
		length, _ := fmt.Fprintf(writer, printFmt, colNames...)
		fmt.Fprintln(writer, strings.Repeat("-", length))

		for _, row := range result.Rows {
			fmt.Fprintf(writer, printFmt, row...)
		}

		if err := writer.Flush(); err != nil {
			return err
		}

		if err := state.showOutput(api, sb.String()); err != nil {
			return err
		}

		// name the output buffer '[connection] query'
		// if it fails, oh well, doesn't hurt anything
		_ = api.SetBufferName(state.outputBuf, fmt.Sprintf("[%s] %s", state.db.CurrentName(), query))

		return nil
	}
}

// showOutput writes text to the reusable query output window, opening it if
// it is not currently visible.
func (s *pluginState) showOutput(api *nvim.Nvim, text string) error {
	var (
		currWin nvim.Window
		currBuf nvim.Buffer
	)
	batch := api.NewBatch()
	batch.CurrentWindow(&currWin)
	batch.CurrentBuffer(&currBuf)
	if err := batch.Execute(); err != nil {
		return err
	}

	targetWindow := nvim.Window(0)
	if s.outputBuf > 0 {
		visible, win, err := isBufferVisible(api, s.outputBuf)
		if err != nil {
			return err
		}
		if visible {
			targetWindow = win
		}
	}

	if targetWindow == 0 {
		existing := nvim.Buffer(0)
		if s.outputBuf > 0 {
			existing = s.outputBuf
		}

		var err error
		s.outputBuf, s.outputWin, err = openSplitWindow(api, false, existing)
		if err != nil {
			return err
		}
		targetWindow = s.outputWin
	}

	lines := strings.Split(text, "\n")

	batch = api.NewBatch()
	batch.SetCurrentWindow(targetWindow)
	batch.SetCurrentBuffer(s.outputBuf)
	// clear any previous results
	batch.Command("%d")
	batch.Put(lines, "l", false, false)
	batch.SetCurrentWindow(currWin)
	batch.SetCurrentBuffer(currBuf)
	return batch.Execute()
}
