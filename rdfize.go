package main

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newRdfizeCmd(a *app) *cobra.Command {
	var creator, lang string
	cmd := &cobra.Command{
		Use:   "rdfize [dir]",
		Short: "Interactively write PhotoRDF sidecars for the JPEG files of a directory",
		Long: `Ask for the location and date of the album, then for the title, location,
date and description of every .jpg file in dir (default: the current
directory), and write a PhotoRDF .rdf file next to each photo. An empty answer
takes the default shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cwd
			if len(args) == 1 {
				dir = normalizePath(args[0], a.cwd)
			}
			r := &rdfizer{
				fs:      a.fs,
				dir:     dir,
				engine:  newTemplateEngine(templatesFor(a.fs, "")),
				prompt:  newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
				out:     cmd.OutOrStdout(),
				creator: creator,
				lang:    lang,
			}
			return r.run()
		},
	}
	cmd.Flags().StringVar(&creator, "creator", defaultAuthor, "photographer named in the sidecars")
	cmd.Flags().StringVar(&lang, "lang", "fr", "language of the titles and descriptions")
	return cmd
}

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// ask prints question and returns the trimmed answer, or def for an empty
// answer. Running out of input is an error.
func (p *prompter) ask(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s (Default: %s)    ", question, def)
	} else {
		fmt.Fprintf(p.out, "%s    ", question)
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	answer := strings.TrimSpace(p.in.Text())
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

var (
	numberPrefixRe = regexp.MustCompile(`\d+-`)
	numberSuffixRe = regexp.MustCompile(`[0-9-]+$`)
)

// inferTitle guesses a title from a photo file name:
// "03-kyoto_temple-2.jpg" becomes "kyoto temple".
func inferTitle(fileName string) string {
	t := strings.ReplaceAll(fileName, "_", " ")
	t = numberPrefixRe.ReplaceAllString(t, "")
	t = strings.TrimSuffix(t, photoExt)
	t = numberSuffixRe.ReplaceAllString(t, "")
	return strings.TrimSpace(t)
}

type photoRDFTemplateParam struct {
	Language    string
	Creator     string
	Title       string
	Location    string
	Description string
	Delimiter   string
	Date        string
}

// The description is followed by the location, after a dash unless the
// description ends a sentence.
func descriptionDelimiter(desc string) string {
	if desc != "" && !strings.HasSuffix(desc, ".") {
		return " - "
	}
	return " "
}

type rdfizer struct {
	fs     afero.Fs
	dir    string
	engine *templateEngine
	prompt *prompter
	out    io.Writer

	creator string
	lang    string
}

func (r *rdfizer) run() error {
	albumLocation, err := r.prompt.ask("Location?", "")
	if err != nil {
		return err
	}
	albumDate, err := r.prompt.ask("Date?", "")
	if err != nil {
		return err
	}

	photos, err := findPhotos(r.fs, r.dir)
	if err != nil {
		return err
	}

	pub := newPublisher(r.fs, r.dir)
	for _, photo := range photos {
		fmt.Fprintf(r.out, "\nProcessing %s…\n", photo)
		p, err := r.askPhoto(photo, albumLocation, albumDate)
		if err != nil {
			return err
		}
		rdf, err := r.engine.render("photo.rdf", p)
		if err != nil {
			return err
		}
		if err := pub.Publish(strings.TrimSuffix(photo, photoExt)+sidecarExt, rdf); err != nil {
			return err
		}
	}
	return nil
}

func (r *rdfizer) askPhoto(photo, albumLocation, albumDate string) (photoRDFTemplateParam, error) {
	p := photoRDFTemplateParam{Language: r.lang, Creator: r.creator}
	var err error
	if p.Title, err = r.prompt.ask("Title?", inferTitle(photo)); err != nil {
		return p, err
	}
	if p.Location, err = r.prompt.ask("Location?", albumLocation); err != nil {
		return p, err
	}
	if p.Date, err = r.prompt.ask("Date?", albumDate); err != nil {
		return p, err
	}
	if p.Description, err = r.prompt.ask("Description?", p.Title); err != nil {
		return p, err
	}
	p.Delimiter = descriptionDelimiter(p.Description)
	return p, nil
}
