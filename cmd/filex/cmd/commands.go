package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/Abraxas-365/filex/errx"
	"github.com/antchfx/xmlquery"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var catCmd = &cobra.Command{
	Use:   "cat <path>",
	Short: "Print the content of a file",
	Args:  usage(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := files.Open(args[0])
		if err != nil {
			return err
		}
		data, err := f.Bytes()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var jsonCmd = &cobra.Command{
	Use:   "json <path> [query]",
	Short: "Pretty print a JSON file or the result of a gjson query",
	Args:  usage(cobra.RangeArgs(1, 2)),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := files.Open(args[0])
		if err != nil {
			return err
		}

		if len(args) == 2 {
			res, err := f.Query(args[1])
			if err != nil {
				return err
			}
			if !res.Exists() {
				return errx.New(fmt.Sprintf("no value at %q", args[1]), errx.TypeNotFound).
					WithDetail("path", f.Path())
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.String())
			return nil
		}

		doc, err := f.ContentAsJSON()
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var xmlCmd = &cobra.Command{
	Use:   "xml <path> [xpath]",
	Short: "Print an XML file or the nodes matching an XPath expression",
	Args:  usage(cobra.RangeArgs(1, 2)),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := files.Open(args[0])
		if err != nil {
			return err
		}
		doc, err := f.ContentAsXML()
		if err != nil {
			return err
		}

		if len(args) == 1 {
			fmt.Fprintln(cmd.OutOrStdout(), doc.OutputXML(false))
			return nil
		}

		nodes, err := xmlquery.QueryAll(doc, args[1])
		if err != nil {
			return errx.Wrap(err, fmt.Sprintf("invalid xpath %q", args[1]), errx.TypeValidation)
		}
		for _, n := range nodes {
			fmt.Fprintln(cmd.OutOrStdout(), n.OutputXML(true))
		}
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info <path>",
	Short: "Show file metadata",
	Args:  usage(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := files.Open(args[0])
		if err != nil {
			return err
		}
		info, err := f.Metadata()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "path:          %s\n", info.FullPath())
		fmt.Fprintf(w, "directory:     %s\n", info.Dir())
		fmt.Fprintf(w, "filename:      %s\n", info.Name())
		if typ, ok := info.FileType(); ok {
			fmt.Fprintf(w, "type:          %s\n", typ)
		}
		if size, ok := info.Size(); ok {
			fmt.Fprintf(w, "size:          %d\n", size)
		}
		if mod, ok := info.LastModified(); ok {
			fmt.Fprintf(w, "last modified: %s\n", mod.Format(time.RFC3339))
		}
		if ct, ok := info.ContentType(); ok {
			fmt.Fprintf(w, "content type:  %s\n", ct)
		}
		if sum, ok := info.Checksum(); ok {
			fmt.Fprintf(w, "xxhash64:      %016x\n", sum)
		}
		return nil
	},
}

var (
	writeAppend bool
	writeAtomic bool
)

var writeCmd = &cobra.Command{
	Use:   "write <path>",
	Short: "Write stdin to a file",
	Args:  usage(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		if writeAppend && writeAtomic {
			return errx.New("--append and --atomic are mutually exclusive", errx.TypeValidation)
		}

		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		f, err := files.OpenOrCreate(args[0])
		if err != nil {
			return err
		}
		f.SetContent(string(data))

		switch {
		case writeAtomic:
			return f.SaveAtomic()
		case writeAppend:
			return f.Save("a")
		default:
			return f.Save("w")
		}
	},
}

var mvCmd = &cobra.Command{
	Use:   "mv <src> <dst>",
	Short: "Move a file; the destination must not exist",
	Args:  usage(cobra.ExactArgs(2)),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := files.Open(args[0])
		if err != nil {
			return err
		}
		moved, err := f.Move(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), moved.Path())
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Delete a file",
	Args:  usage(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		return files.Delete(args[0])
	},
}

func init() {
	writeCmd.Flags().BoolVarP(&writeAppend, "append", "a", false, "append instead of truncating")
	writeCmd.Flags().BoolVar(&writeAtomic, "atomic", false, "write to a temp file and rename it into place")
}
