package binder

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"
)

// DefaultMaxMemory is the in-memory budget for multipart parsing; larger
// parts spill to temporary files.
const DefaultMaxMemory = 10 << 20

var fileHeaderType = reflect.TypeOf((*multipart.FileHeader)(nil))

// Form binds urlencoded or multipart form values into `form:"name"` fields
// and uploaded files into *multipart.FileHeader fields tagged `file:"name"`.
// maxBytes caps the whole request body; <= 0 disables the cap.
func Form(maxBytes int64) Func {
	return func(r *http.Request, v any) error {
		mt, params, err := mediaType(r)
		if err != nil {
			return err
		}
		if maxBytes > 0 {
			r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
		}

		var files map[string][]*multipart.FileHeader
		switch {
		case mt == "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return formError(err)
			}
		case mt == "multipart/form-data":
			if params["boundary"] == "" {
				return fmt.Errorf("%w: missing boundary", ErrInvalidForm)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return formError(err)
			}
			files = r.MultipartForm.File
		default:
			return fmt.Errorf("%w: got %s, expected form data", ErrUnsupportedMediaType, mt)
		}

		if err := bindValues(v, "form", r.PostForm, ErrInvalidForm); err != nil {
			return err
		}
		return bindFiles(v, files)
	}
}

func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, tooLarge.Limit)
	}
	// multipart does not always wrap the underlying read error
	if strings.Contains(err.Error(), "request body too large") {
		return fmt.Errorf("%w: %v", ErrBodyTooLarge, err)
	}
	return fmt.Errorf("%w: %v", ErrInvalidForm, err)
}

func bindFiles(v any, files map[string][]*multipart.FileHeader) error {
	rv, err := structValue(v, ErrInvalidForm)
	if err != nil {
		return err
	}
	rt := rv.Type()
	for i := range rt.NumField() {
		sf := rt.Field(i)
		name := strings.Split(sf.Tag.Get("file"), ",")[0]
		if name == "" || name == "-" || !sf.IsExported() {
			continue
		}
		if sf.Type != fileHeaderType {
			return fmt.Errorf("%w: field %s must be *multipart.FileHeader", ErrInvalidForm, sf.Name)
		}
		if fhs := files[name]; len(fhs) > 0 {
			rv.Field(i).Set(reflect.ValueOf(fhs[0]))
		}
	}
	return nil
}
