package fsutils

import (
	"io"
	"os"
)

// ReadFileData reads file content limited by max bytes.
// max == 0 reads the whole file, max > 0 reads from the start,
// max < 0 reads the last -max bytes.
func ReadFileData(filename string, max int) (data []byte, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	if max == 0 {
		return io.ReadAll(file)
	}
	if max > 0 {
		return io.ReadAll(io.LimitReader(file, int64(max)))
	}

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	absMax := int64(-max)
	if info.Size() > absMax {
		if _, err = file.Seek(-absMax, io.SeekEnd); err != nil {
			return nil, err
		}
	}
	return io.ReadAll(file)
}
