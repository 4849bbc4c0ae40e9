//go:build windows

package windowsapi

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Windows Event Log API constants
const (
	EvtQueryChannelPath      uint32 = 0x1
	EvtQueryForwardDirection uint32 = 0x100
	EvtQueryReverseDirection uint32 = 0x200

	EvtRenderEventXml uint32 = 1

	ERROR_NO_MORE_ITEMS         syscall.Errno = 259
	ERROR_EVT_CHANNEL_NOT_FOUND syscall.Errno = 15007
)

var (
	wevtapiDll = windows.NewLazySystemDLL("wevtapi.dll")

	procEvtQuery  = wevtapiDll.NewProc("EvtQuery")
	procEvtNext   = wevtapiDll.NewProc("EvtNext")
	procEvtRender = wevtapiDll.NewProc("EvtRender")
	procEvtClose  = wevtapiDll.NewProc("EvtClose")
)

// EvtQuery opens a query handle against a local event log channel.
// The returned handle must be released with EvtClose.
func EvtQuery(channel, query string, flags uint32) (syscall.Handle, error) {
	channelPtr, err := syscall.UTF16PtrFromString(channel)
	if err != nil {
		return 0, fmt.Errorf("invalid channel name %q: %w", channel, err)
	}
	queryPtr, err := syscall.UTF16PtrFromString(query)
	if err != nil {
		return 0, fmt.Errorf("invalid query %q: %w", query, err)
	}

	r1, _, callErr := procEvtQuery.Call(
		0, // Session (local)
		uintptr(unsafe.Pointer(channelPtr)),
		uintptr(unsafe.Pointer(queryPtr)),
		uintptr(flags),
	)
	if r1 == 0 {
		return 0, callErr
	}
	return syscall.Handle(r1), nil
}

// EvtNext fills events with the next batch of event handles and returns how
// many were produced. ERROR_NO_MORE_ITEMS signals the end of the result set.
func EvtNext(queryHandle syscall.Handle, events []syscall.Handle) (uint32, error) {
	var returned uint32

	r1, _, callErr := procEvtNext.Call(
		uintptr(queryHandle),
		uintptr(len(events)),
		uintptr(unsafe.Pointer(&events[0])),
		uintptr(2000), // Timeout in ms
		0,             // Reserved
		uintptr(unsafe.Pointer(&returned)),
	)
	if r1 == 0 {
		return returned, callErr
	}
	return returned, nil
}

// EvtClose releases an event or query handle. A zero handle is ignored.
func EvtClose(handle syscall.Handle) {
	if handle != 0 {
		procEvtClose.Call(uintptr(handle))
	}
}

// RenderEventXML renders a single event handle to its XML representation.
func RenderEventXML(eventHandle syscall.Handle) (string, error) {
	var bufferUsed uint32
	var propertyCount uint32

	// First call to get the required buffer size
	procEvtRender.Call(
		0,
		uintptr(eventHandle),
		uintptr(EvtRenderEventXml),
		0,
		0,
		uintptr(unsafe.Pointer(&bufferUsed)),
		uintptr(unsafe.Pointer(&propertyCount)),
	)
	if bufferUsed == 0 {
		return "", fmt.Errorf("EvtRender returned an empty buffer size")
	}

	buffer := make([]uint16, bufferUsed/2)

	// Second call to get the actual data
	r1, _, callErr := procEvtRender.Call(
		0,
		uintptr(eventHandle),
		uintptr(EvtRenderEventXml),
		uintptr(bufferUsed),
		uintptr(unsafe.Pointer(&buffer[0])),
		uintptr(unsafe.Pointer(&bufferUsed)),
		uintptr(unsafe.Pointer(&propertyCount)),
	)
	if r1 == 0 {
		return "", callErr
	}

	return syscall.UTF16ToString(buffer), nil
}
