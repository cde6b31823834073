// Package raster turns decoded PDF image samples into Go images.
//
// A Samples value carries the unpacked stream bytes together with the
// geometry and colour space declared on the image XObject:
//
//	img, err := raster.Samples{
//	    Width: 64, Height: 64, BitsPerComponent: 8,
//	    Space: raster.Space{Family: "DeviceRGB", Components: 3},
//	    Data:  decoded,
//	}.Image()
//
// Single component spaces produce *image.Gray. Everything else (RGB, CMYK,
// Lab, Indexed, ICC based) produces *image.RGBA. ToRGB normalizes any
// image.Image onto *image.RGBA and reports gray images as not RGB.
package raster
