// Package chroma decides whether a PDF page carries colour.
//
// An Analyzer runs an ordered list of named pixel tests over an RGB raster.
// A Classifier combines three signals for a page, strongest first: an RGB
// colour set in the content stream, a pixel test firing on an embedded
// image, and, only when an image cannot be decoded, a colour family declared
// by that image or by an earlier image on the page.
//
//	c := chroma.NewClassifier(chroma.DefaultThresholds(), nil)
//	v := c.Classify(page)
//	if v.Colored {
//	    fmt.Println("coloured by", v.Signal)
//	}
package chroma
