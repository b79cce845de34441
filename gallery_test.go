package main

import (
	"bytes"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/spf13/afero"
)

const kyotoSidecar = `<?xml version='1.0' encoding='utf-8'?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
    xmlns:s0="http://www.w3.org/2000/PhotoRDF/dc-1-0#"
    xmlns:s1="http://sophia.inria.fr/~enerbonn/rdfpiclang#">
  <rdf:Description rdf:about="">
    <s1:xmllang>fr</s1:xmllang>
    <s0:title>Érables &amp; temples</s0:title>
    <s0:coverage>Kyoto</s0:coverage>
    <s0:description>Rouge - Kyoto</s0:description>
    <s0:date>2013-11</s0:date>
  </rdf:Description>
</rdf:RDF>
`

func TestReadSidecar(t *testing.T) {
	c := qt.New(t)
	fs := afero.NewMemMapFs()
	writeFile(c, fs, "/photos/01-maples.rdf", kyotoSidecar)

	rdf, err := readSidecar(fs, "/photos/01-maples.rdf")
	c.Assert(err, qt.IsNil)
	c.Assert(rdf.Description.Title, qt.Equals, "Érables & temples")

	rdf, err = readSidecar(fs, "/photos/none.rdf")
	c.Assert(err, qt.IsNil)
	c.Assert(rdf, qt.IsNil)

	writeFile(c, fs, "/photos/bad.rdf", "<rdf:RDF>")
	_, err = readSidecar(fs, "/photos/bad.rdf")
	c.Assert(err, qt.ErrorMatches, "parsing /photos/bad.rdf: .*")
}

func TestWriteGallery(t *testing.T) {
	c := qt.New(t)
	fs := afero.NewMemMapFs()
	writeFile(c, fs, "/photos/02-temple.jpg", "")
	writeFile(c, fs, "/photos/01-maples.jpg", "")
	writeFile(c, fs, "/photos/01-maples.rdf", kyotoSidecar)
	writeFile(c, fs, "/photos/notes.txt", "")
	c.Assert(fs.MkdirAll("/photos/tn", 0755), qt.IsNil)

	var out bytes.Buffer
	err := writeGallery(fs, "/photos", newTemplateEngine(templatesFor(fs, "")), &out)
	c.Assert(err, qt.IsNil)

	got := out.String()
	c.Assert(got, qt.Contains, `<a href="01-maples.html" title="Érables &amp; temples"><img src="tn/tn_01-maples.jpg" alt="Érables &amp; temples" /></a>`)
	c.Assert(got, qt.Contains, `<p><a href="02-temple.html"></a></p>`)
	c.Assert(got, qt.Not(qt.Contains), "notes")
	c.Assert(bytes.Index(out.Bytes(), []byte("01-maples")) < bytes.Index(out.Bytes(), []byte("02-temple")), qt.IsTrue)
}

func TestGalleryCommand(t *testing.T) {
	c := qt.New(t)
	fs := afero.NewMemMapFs()
	writeFile(c, fs, "/photos/a.jpg", "")

	var out bytes.Buffer
	a := &app{fs: fs, cwd: "/photos", stdout: &out, stderr: &bytes.Buffer{}}
	root := newRootCmd(a)
	root.SetArgs([]string{"gallery"})
	c.Assert(root.Execute(), qt.IsNil)
	c.Assert(out.String(), qt.Contains, `<div class="gall">`)
	c.Assert(out.String(), qt.Contains, `tn/tn_a.jpg`)
}
