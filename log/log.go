package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kjk/javaprops/properties"
)

var (
	log       *WriteDaily
	errorsLog *WriteDaily
	eventsLog *WriteDaily

	// messages go here in addition to log files
	out io.Writer = os.Stderr

	// called for every Logf() call
	onLog func(s string)

	// if true, Verbosef() will log messages
	Verbose bool
)

// WriteDaily appends to a file named after current date (YYYY-MM-DD.txt)
// in Dir, starting a new file when the date changes
type WriteDaily struct {
	Dir         string
	currentDate int // YYYYMMDD format
	file        *os.File
	mu          sync.Mutex
}

func NewWriteDaily(dir string) *WriteDaily {
	return &WriteDaily{
		Dir: dir,
	}
}

// dayFromTime converts a time.Time to YYYYMMDD integer format
func dayFromTime(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

func (w *WriteDaily) writerLocked() (io.Writer, error) {
	now := time.Now().UTC()
	today := dayFromTime(now)

	if w.file != nil && w.currentDate != today {
		if err := w.close(); err != nil {
			return nil, err
		}
	}
	if w.file != nil {
		return w.file, nil
	}

	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return nil, err
	}
	path := filepath.Join(w.Dir, now.Format("2006-01-02")+".txt")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	w.file = f
	w.currentDate = today
	return f, nil
}

// Write writes data to today's file
// it's safe to call on nil receiver
func (w *WriteDaily) Write(d []byte) error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	wr, err := w.writerLocked()
	if err != nil {
		return err
	}
	_, err = wr.Write(d)
	return err
}

// WriteString writes a string to today's file
// it's safe to call on nil receiver
func (w *WriteDaily) WriteString(s string) error {
	return w.Write([]byte(s))
}

func (w *WriteDaily) close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	w.currentDate = 0
	return err
}

// Close closes the file
// it's safe to call on nil receiver
func (w *WriteDaily) Close() error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.close()
}

type Config struct {
	// if set, logs are also written to files in
	// Dir/log, Dir/errors and Dir/events
	Dir string
	// where messages are printed, os.Stderr if nil
	Out io.Writer
	// called for every Logf() call
	OnLog func(s string)
}

// Init configures logging. Can be called more than once
func Init(config *Config) {
	Close()
	out = config.Out
	if out == nil {
		out = os.Stderr
	}
	onLog = config.OnLog
	dir := config.Dir
	if dir == "" {
		return
	}
	log = NewWriteDaily(filepath.Join(dir, "log"))
	errorsLog = NewWriteDaily(filepath.Join(dir, "errors"))
	// doesn't create files unless an event is logged
	eventsLog = NewWriteDaily(filepath.Join(dir, "events"))
}

// CloseWriteDaily closes the WriteDaily and sets its pointer to nil
// it's safe to call with nil pointer
func CloseWriteDaily(wd **WriteDaily) {
	if *wd == nil {
		return
	}
	(*wd).Close()
	*wd = nil
}

func Close() {
	CloseWriteDaily(&log)
	CloseWriteDaily(&errorsLog)
	CloseWriteDaily(&eventsLog)
}

func Logf(s string, args ...any) {
	if len(args) > 0 {
		s = fmt.Sprintf(s, args...)
	}
	fmt.Fprint(out, s)
	log.WriteString(s)
	if onLog != nil {
		onLog(s)
	}
}

func Verbosef(format string, args ...any) {
	if !Verbose {
		return
	}
	Logf(format, args...)
}

func GetCallstackFrames(skip int) []string {
	var callers [32]uintptr
	n := runtime.Callers(skip+1, callers[:])
	frames := runtime.CallersFrames(callers[:n])
	var cs []string
	for {
		frame, more := frames.Next()
		if !more {
			break
		}
		s := frame.File + ":" + strconv.Itoa(frame.Line)
		cs = append(cs, s)
	}
	return cs
}

func GetCallstack(skip int) string {
	frames := GetCallstackFrames(skip + 1)
	return strings.Join(frames, "\n")
}

// Errorf logs an error message. The callstack is only
// printed if Verbose but always written to the errors log
func Errorf(s string, args ...any) {
	if len(args) > 0 {
		s = fmt.Sprintf(s, args...)
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	cs := GetCallstack(1)
	errorsLog.WriteString(s + cs + "\n")
	if Verbose {
		Logf("%s%s\n", s, cs)
		return
	}
	Logf("%s", s)
}

// if err != nil, log and return true
// IfErrf(err) => logs err.Error()
// IfErrf(err, "error is: %v", err) => logs message formatted
func IfErrf(err error, a ...any) bool {
	if err == nil {
		return false
	}
	if len(a) == 0 {
		Errorf("%s", err.Error())
		return true
	}
	s, ok := a[0].(string)
	if !ok {
		// shouldn't happen but just in case
		s = fmt.Sprintf("%s", a[0])
	}
	if len(a) > 1 {
		s = fmt.Sprintf(s, a[1:]...)
	}
	Errorf("%s", s)
	return true
}

func panicIf(cond bool) {
	if cond {
		panic("condition is true")
	}
}

// FormatEvent formats an event as .properties text: a timestamp comment
// followed by "event=name" and key=value lines
func FormatEvent(t time.Time, name string, vals ...any) []byte {
	n := len(vals)
	panicIf(n%2 != 0)
	var buf bytes.Buffer
	w := properties.NewWriter(&buf)
	w.Now = func() time.Time { return t }
	_ = w.WriteHeader("")
	_ = w.WriteEntry("event", name)
	for i := 0; i < n; i += 2 {
		k := fmt.Sprintf("%v", vals[i])
		v := fmt.Sprintf("%v", vals[i+1])
		_ = w.WriteEntry(k, v)
	}
	_ = w.Flush()
	return buf.Bytes()
}

// Event records an event (e.g. a change to a file) in the events log.
// It's a no-op if Init() wasn't called with Dir
func Event(name string, vals ...any) {
	d := FormatEvent(time.Now().UTC(), name, vals...)
	eventsLog.Write(d)
	Verbosef("event: %s", d)
}
