// Package binder populates request structs from HTTP requests.
//
// JSON decodes bodies strictly, Query reads `query` tags, and Form reads
// `form` and `file` tags from urlencoded or multipart bodies. Each returns
// a Func that handler.Wrap applies in order.
//
//	type scanRequest struct {
//	    Image *multipart.FileHeader `file:"image"`
//	    Lat   *float64              `form:"lat"`
//	    Lng   *float64              `form:"lng"`
//	}
package binder
