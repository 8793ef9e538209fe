package errs

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategories(t *testing.T) {
	formatErrs := []error{
		ErrEmptyFile, ErrASCIIFormat, ErrTruncated, ErrCorruptedBlockHeader,
		ErrByteOrderChanged, ErrTrailerMismatch, ErrMisalignedBlock,
		ErrUnknownPostFormat, ErrMultiDimSweep, ErrMissingSentinel, ErrTrailingValues,
	}
	for _, err := range formatErrs {
		require.ErrorIs(t, err, ErrFormat, err.Error())
		require.NotErrorIs(t, err, ErrParse)
	}

	parseErrs := []error{
		ErrHeaderTooShort, ErrNotEnoughNames, ErrInvalidVectorCount,
		ErrInvalidSignalName, ErrDuplicateSignal, ErrInvalidItemWidth, ErrUnsupportedEncoding,
	}
	for _, err := range parseErrs {
		require.ErrorIs(t, err, ErrParse, err.Error())
		require.NotErrorIs(t, err, ErrFormat)
	}

	require.ErrorIs(t, ErrTruncated, io.ErrUnexpectedEOF)
}

func TestIO(t *testing.T) {
	require.NoError(t, IO("open", nil))

	err := IO("open", os.ErrNotExist)
	require.ErrorIs(t, err, ErrIO)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Contains(t, err.Error(), "open")

	var pathErr *os.PathError
	_, statErr := os.Stat("/nonexistent/hspice/file")
	err = IO("stat", statErr)
	require.True(t, errors.As(err, &pathErr))
}
