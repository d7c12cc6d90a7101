package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"numlens/internal/layout"
	"numlens/internal/npy"
	"numlens/internal/types"
)

var dtypeCmd = &cobra.Command{
	Use:   "dtype [flags] typestr|descr|type",
	Short: "Map between dtypes and compiler type tags",
	Long: `Dtype maps an array-interface typestr ("<i4") or a JSON descr list
([["x","<i4"],["y","<f8"]]) to the compiler type it corresponds to. With
--reverse the argument is a compiler type name ("int32", "double") and the
matching dtype is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runDtype,
}

func init() {
	dtypeCmd.Flags().Bool("reverse", false, "map a compiler type name to its dtype")
	dtypeCmd.Flags().Bool("aligned", false, "treat a descr list as an aligned struct")
	dtypeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type dtypePayload struct {
	Type     string          `json:"type"`
	Typestr  string          `json:"typestr"`
	Dtype    string          `json:"dtype"`
	ItemSize int             `json:"itemsize"`
	Descr    json.RawMessage `json:"descr,omitempty"`
}

func runDtype(cmd *cobra.Command, args []string) error {
	reverse, err := cmd.Flags().GetBool("reverse")
	if err != nil {
		return fmt.Errorf("failed to get reverse flag: %w", err)
	}
	aligned, err := cmd.Flags().GetBool("aligned")
	if err != nil {
		return fmt.Errorf("failed to get aligned flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	in := types.NewInterner()
	m := npy.NewMapper(in, layout.X86_64LinuxGNU())

	var id types.TypeID
	var d npy.Descriptor
	if reverse {
		var ok bool
		if id, ok = in.Find(args[0]); !ok {
			return fmt.Errorf("unknown type %q", args[0])
		}
		if d, err = m.ToDtype(id); err != nil {
			return err
		}
	} else {
		if id, d, err = parseDtypeArg(m, args[0], aligned); err != nil {
			return err
		}
	}

	payload := dtypePayload{Type: m.Label(id), Typestr: d.Str(), Dtype: d.String(), ItemSize: d.ItemSize}
	if len(d.Fields) > 0 {
		if payload.Descr, err = d.Descr(); err != nil {
			return err
		}
	}
	return renderDtype(cmd.OutOrStdout(), payload, format)
}

func parseDtypeArg(m *npy.Mapper, arg string, aligned bool) (types.TypeID, npy.Descriptor, error) {
	if strings.HasPrefix(strings.TrimSpace(arg), "[") {
		d, err := npy.ParseDescr([]byte(arg), aligned)
		if err != nil {
			return types.NoTypeID, npy.Descriptor{}, err
		}
		return m.LayoutRecord(d)
	}
	d, err := npy.ParseTypestr(arg)
	if err != nil {
		return types.NoTypeID, npy.Descriptor{}, err
	}
	id, err := m.MapDtype(d)
	if err != nil {
		return types.NoTypeID, npy.Descriptor{}, err
	}
	return id, d, nil
}

func renderDtype(out io.Writer, p dtypePayload, format string) error {
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}
	fmt.Fprintf(out, "type:     %s\n", p.Type)
	fmt.Fprintf(out, "typestr:  %s\n", p.Typestr)
	fmt.Fprintf(out, "dtype:    %s\n", p.Dtype)
	fmt.Fprintf(out, "itemsize: %d\n", p.ItemSize)
	if len(p.Descr) > 0 {
		fmt.Fprintf(out, "descr:    %s\n", p.Descr)
	}
	return nil
}
