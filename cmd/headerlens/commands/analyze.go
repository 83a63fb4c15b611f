package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/busybox42/headerlens/internal/analyzer"
	"github.com/busybox42/headerlens/internal/header"
	"github.com/busybox42/headerlens/internal/msheader"
)

var (
	analyzeDirection string
	analyzePrefix    string
	analyzeJSON      bool

	analyzeCmd = &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze email headers from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyze,
	}
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeDirection, "direction", "d", "inbound", "Mail direction: inbound or outbound")
	analyzeCmd.Flags().StringVarP(&analyzePrefix, "custom-prefix", "p", "", "Highlight headers whose name starts with this prefix")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Emit the full analysis as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	direction, err := header.ParseDirection(analyzeDirection)
	if err != nil {
		return err
	}

	var source []byte
	if len(args) == 1 {
		source, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
	} else {
		source, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	analysis, err := analyzer.Analyze(string(source), direction, analyzePrefix)
	if err != nil {
		return err
	}

	if analyzeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}

	renderText(cmd.OutOrStdout(), analysis)
	return nil
}

// renderText prints a human-readable summary of the analysis.
func renderText(w io.Writer, a *analyzer.Analysis) {
	fmt.Fprintf(w, "Analysis %s (%s)\n", a.ID, a.Direction)

	if len(a.Headers.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, warning := range a.Headers.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}

	fmt.Fprintln(w, "\nCanonical fields:")
	ids := make([]string, 0, len(a.Headers.Canonical))
	for id := range a.Headers.Canonical {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	for _, id := range ids {
		c := a.Headers.Canonical[header.Identity(id)]
		switch {
		case c.Missing:
			fmt.Fprintf(w, "  %-50s <missing>\n", c.Name+":")
		case c.Err != "":
			fmt.Fprintf(w, "  %-50s <%s>\n", c.Name+":", c.Err)
		case c.Value != "":
			fmt.Fprintf(w, "  %-50s %s\n", c.Name+":", c.Value)
		}
	}

	renderSecurity(w, a.Security)

	if len(a.Headers.CustomMatches) > 0 {
		fmt.Fprintf(w, "\nHeaders matching %q:\n", a.CustomPrefix)
		for _, rec := range a.Headers.CustomMatches {
			fmt.Fprintf(w, "  %s: %s\n", rec.Name, rec.Value)
		}
	}

	fmt.Fprintf(w, "\n%d headers total\n", len(a.Headers.AsReceived))
}

func renderSecurity(w io.Writer, report msheader.Report) {
	if report.AuthenticationResults == nil && report.OriginalAuthentication == nil &&
		report.ForefrontSpamReport == nil && report.BulkReport == nil {
		return
	}

	fmt.Fprintln(w, "\nSecurity report:")

	if ar := report.AuthenticationResults; ar != nil {
		if ar.CompAuth != nil {
			fmt.Fprintf(w, "  compauth: %s", ar.CompAuth.Result)
			if ar.CompAuth.ReasonCode != "" {
				fmt.Fprintf(w, " (reason %s: %s)", ar.CompAuth.ReasonCode, ar.CompAuth.ReasonMeaning)
			}
			fmt.Fprintln(w)
		}
		if ar.DMARC != nil {
			fmt.Fprintf(w, "  dmarc:    %s", ar.DMARC.Result)
			if ar.DMARC.Action != "" {
				fmt.Fprintf(w, " (action %s)", ar.DMARC.Action)
			}
			fmt.Fprintln(w)
		}
		if ar.DKIM != nil {
			fmt.Fprintf(w, "  dkim:     %s %s\n", ar.DKIM.Result, ar.DKIM.Details)
		}
		if ar.SPF != nil {
			fmt.Fprintf(w, "  spf:      %s %s\n", ar.SPF.Result, ar.SPF.Details)
		}
	}

	if oa := report.OriginalAuthentication; oa != nil {
		fmt.Fprintf(w, "  pre-quarantine auth: %s\n", oa.Result)
	}

	if fr := report.ForefrontSpamReport; fr != nil {
		fmt.Fprintf(w, "  category: %s, SCL %d (%s)\n", fr.MessageCategorisation, fr.SpamScore, fr.SpamScoreMeaning)
		if fr.FilterVerdict != "" {
			fmt.Fprintf(w, "  filter verdict: %s\n", fr.FilterVerdict)
		}
		var sender []string
		if fr.Sender.IP != "" {
			sender = append(sender, "ip "+fr.Sender.IP)
		}
		if fr.Sender.Country != "" {
			sender = append(sender, "country "+fr.Sender.Country)
		}
		if fr.Sender.ReverseDNS != "" {
			sender = append(sender, "ptr "+fr.Sender.ReverseDNS)
		}
		if fr.Sender.Helo != "" {
			sender = append(sender, "helo "+fr.Sender.Helo)
		}
		if len(sender) > 0 {
			fmt.Fprintf(w, "  sender: %s\n", strings.Join(sender, ", "))
		}
		if fr.SpoofingWarning != "" {
			fmt.Fprintf(w, "  spoofing: %s\n", fr.SpoofingWarning)
		}
		if fr.ReleasedFromQuarantine {
			fmt.Fprintln(w, "  released from quarantine")
		}
		if fr.FlaggedDueToUserComplaints {
			fmt.Fprintln(w, "  flagged due to user complaints")
		}
	}

	if br := report.BulkReport; br != nil {
		fmt.Fprintf(w, "  BCL %d (%s)\n", br.BulkComplaintLevel, br.Meaning)
	}
}
