package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const (
	photoExt   = ".jpg"
	sidecarExt = ".rdf"
)

// photoRDF is the part of a PhotoRDF sidecar the gallery shows.
type photoRDF struct {
	Description struct {
		Title string `xml:"title"`
	} `xml:"Description"`
}

type galleryImage struct {
	// File name without extension.
	Name  string
	Title string
}

type galleryTemplateParam struct {
	Images []galleryImage
}

func newGalleryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "gallery [dir]",
		Short: "Print gallery markup for the JPEG files of a directory",
		Long: `Print the gallery markup for every .jpg file in dir (default: the current
directory), to paste into an entry's Markdown source. When a PhotoRDF sidecar
(.rdf) exists for a photo, its title is used for the link and caption.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cwd
			if len(args) == 1 {
				dir = normalizePath(args[0], a.cwd)
			}
			return writeGallery(a.fs, dir, newTemplateEngine(templatesFor(a.fs, "")), cmd.OutOrStdout())
		},
	}
}

func writeGallery(fs afero.Fs, dir string, engine *templateEngine, w io.Writer) error {
	photos, err := findPhotos(fs, dir)
	if err != nil {
		return err
	}

	images := make([]galleryImage, 0, len(photos))
	for _, photo := range photos {
		img := galleryImage{Name: strings.TrimSuffix(photo, photoExt)}
		rdf, err := readSidecar(fs, filepath.Join(dir, img.Name+sidecarExt))
		if err != nil {
			return err
		}
		if rdf != nil {
			img.Title = rdf.Description.Title
		}
		images = append(images, img)
	}

	out, err := engine.render("gallery.html", galleryTemplateParam{Images: images})
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// findPhotos lists the .jpg files of dir, sorted by name.
func findPhotos(fs afero.Fs, dir string) ([]string, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, err
	}
	var photos []string
	for _, fi := range infos {
		if !fi.IsDir() && strings.HasSuffix(fi.Name(), photoExt) {
			photos = append(photos, fi.Name())
		}
	}
	return photos, nil
}

// readSidecar returns nil without error when there is no sidecar.
func readSidecar(fs afero.Fs, path string) (*photoRDF, error) {
	if ok, err := afero.Exists(fs, path); !ok {
		return nil, err
	}
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	var rdf photoRDF
	if err := xml.Unmarshal(raw, &rdf); err != nil {
		return nil, fmt.Errorf("parsing %v: %w", path, err)
	}
	return &rdf, nil
}
