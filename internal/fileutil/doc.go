// Package fileutil provides directory scanning with pattern and extension filtering.
//
// ScanDirectory is the single place the tool enumerates files on disk. It lists
// one directory level, skips hidden files the way a shell glob does, and returns
// paths joined onto the scanned directory so callers can use them verbatim in
// reports and deletion.
//
//	result, err := fileutil.ScanDirectory("flowtests/Foo", fileutil.ScanOptions{
//	    Pattern:      `^3_warped_`,
//	    Extensions:   []string{".png"},
//	    AllowMissing: true,
//	})
//	if err != nil {
//	    return err
//	}
//	for _, file := range result.Files {
//	    fmt.Println(file) // flowtests/Foo/3_warped_a.png
//	}
//
// Output is sorted lexicographically, which callers rely on for tie-breaks.
package fileutil
