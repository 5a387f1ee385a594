//go:build windows

package host

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/bassista/go_pptcoach/internal/logger"
	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

const (
	dispUnknownName    uint32 = 0x80020006
	dispMemberNotFound uint32 = 0x80020003
)

var errThreadClosed = errors.New("COM thread is closed")

// COMConnector reaches PowerPoint through the Running Object Table.
// Every automation call runs on one OS thread initialised as a single-threaded
// apartment, so handles may be used from any goroutine but calls are serialised.
type COMConnector struct {
	sta *staThread
}

func NewCOMConnector() (*COMConnector, error) {
	sta, err := newSTAThread()
	if err != nil {
		return nil, fmt.Errorf("initialise COM: %w", err)
	}
	return &COMConnector{sta: sta}, nil
}

func (c *COMConnector) Installed() bool {
	err := c.sta.do(func() error {
		_, err := ole.CLSIDFromProgID(ProgID)
		return err
	})
	if err != nil {
		logger.WithComponent("com-host").Debugf("program id %s not resolvable: %v", ProgID, err)
	}
	return err == nil
}

func (c *COMConnector) Connect() (Application, error) {
	var disp *ole.IDispatch
	err := c.sta.do(func() error {
		clsid, err := ole.CLSIDFromProgID(ProgID)
		if err != nil {
			return &ConnectionError{Reason: "failed to get CLSID for " + ProgID, Code: hresultOf(err), Err: err}
		}
		unknown, err := ole.GetActiveObject(clsid, ole.IID_IUnknown)
		if err != nil {
			return &ConnectionError{Reason: "failed to connect to running PowerPoint instance", Code: hresultOf(err), Err: err}
		}
		if unknown == nil {
			return &ConnectionError{Reason: "PowerPoint instance is null"}
		}
		defer unknown.Release()
		disp, err = unknown.QueryInterface(ole.IID_IDispatch)
		if err != nil {
			return &ConnectionError{Reason: "PowerPoint instance does not support automation", Code: hresultOf(err), Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.WithComponent("com-host").Debugf("connected to running %s", ProgID)
	return &comApplication{comObject{sta: c.sta, disp: disp}}, nil
}

// Close stops the apartment thread. Handles obtained from this connector
// must not be used afterwards.
func (c *COMConnector) Close() {
	c.sta.close()
}

type staThread struct {
	calls chan func()
	done  chan struct{}
	once  sync.Once
}

func newSTAThread() (*staThread, error) {
	t := &staThread{calls: make(chan func()), done: make(chan struct{})}
	ready := make(chan error, 1)
	go t.loop(ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return t, nil
}

func (t *staThread) loop(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		ready <- err
		return
	}
	defer ole.CoUninitialize()
	ready <- nil

	for {
		select {
		case fn := <-t.calls:
			fn()
		case <-t.done:
			return
		}
	}
}

func (t *staThread) do(fn func() error) error {
	errc := make(chan error, 1)
	call := func() {
		defer func() {
			if r := recover(); r != nil {
				errc <- fmt.Errorf("automation call panicked: %v", r)
			}
		}()
		errc <- fn()
	}
	select {
	case t.calls <- call:
	case <-t.done:
		return errThreadClosed
	}
	return <-errc
}

func (t *staThread) close() {
	t.once.Do(func() { close(t.done) })
}

func hresultOf(err error) int32 {
	var oe *ole.OleError
	if errors.As(err, &oe) {
		return int32(uint32(oe.Code()))
	}
	return 0
}

// classify marks late-binding failures as ErrInvalidInstance.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch uint32(hresultOf(err)) {
	case dispUnknownName, dispMemberNotFound:
		return fmt.Errorf("%w: %v", ErrInvalidInstance, err)
	}
	return err
}

// comObject owns one IDispatch reference.
type comObject struct {
	sta  *staThread
	disp *ole.IDispatch
}

func (o *comObject) Release() {
	if o == nil || o.disp == nil {
		return
	}
	d := o.disp
	o.disp = nil
	_ = o.sta.do(func() error {
		d.Release()
		return nil
	})
}

// walk resolves chain from o.disp. The returned release func frees every
// intermediate object; the caller must run it on the apartment thread.
func walk(d *ole.IDispatch, chain ...string) (*ole.IDispatch, func(), error) {
	var owned []*ole.IDispatch
	release := func() {
		for i := len(owned) - 1; i >= 0; i-- {
			owned[i].Release()
		}
	}
	cur := d
	for i, name := range chain {
		v, err := oleutil.GetProperty(cur, name)
		if err != nil {
			release()
			return nil, nil, fmt.Errorf("get %s: %w", strings.Join(chain[:i+1], "."), classify(err))
		}
		next := v.ToIDispatch()
		if next == nil {
			_ = v.Clear()
			release()
			return nil, nil, fmt.Errorf("%s is not an object", strings.Join(chain[:i+1], "."))
		}
		owned = append(owned, next)
		cur = next
	}
	return cur, release, nil
}

func (o *comObject) value(chain ...string) (any, error) {
	var out any
	err := o.sta.do(func() error {
		if o.disp == nil {
			return ErrInvalidInstance
		}
		parent, release, err := walk(o.disp, chain[:len(chain)-1]...)
		if err != nil {
			return err
		}
		defer release()
		v, err := oleutil.GetProperty(parent, chain[len(chain)-1])
		if err != nil {
			return fmt.Errorf("get %s: %w", strings.Join(chain, "."), classify(err))
		}
		defer v.Clear()
		out = v.Value()
		return nil
	})
	return out, err
}

func (o *comObject) object(chain ...string) (comObject, error) {
	var out *ole.IDispatch
	err := o.sta.do(func() error {
		if o.disp == nil {
			return ErrInvalidInstance
		}
		parent, release, err := walk(o.disp, chain[:len(chain)-1]...)
		if err != nil {
			return err
		}
		defer release()
		v, err := oleutil.GetProperty(parent, chain[len(chain)-1])
		if err != nil {
			return fmt.Errorf("get %s: %w", strings.Join(chain, "."), classify(err))
		}
		out = v.ToIDispatch()
		if out == nil {
			_ = v.Clear()
			return fmt.Errorf("%s is not an object", strings.Join(chain, "."))
		}
		return nil
	})
	return comObject{sta: o.sta, disp: out}, err
}

// callObject walks chain then invokes method, returning the resulting object.
func (o *comObject) callObject(chain []string, method string, params ...any) (comObject, error) {
	var out *ole.IDispatch
	err := o.sta.do(func() error {
		if o.disp == nil {
			return ErrInvalidInstance
		}
		target, release, err := walk(o.disp, chain...)
		if err != nil {
			return err
		}
		defer release()
		v, err := oleutil.CallMethod(target, method, params...)
		if err != nil {
			return fmt.Errorf("call %s: %w", method, classify(err))
		}
		out = v.ToIDispatch()
		if out == nil {
			_ = v.Clear()
			return fmt.Errorf("%s did not return an object", method)
		}
		return nil
	})
	return comObject{sta: o.sta, disp: out}, err
}

func (o *comObject) call(method string, params ...any) error {
	return o.sta.do(func() error {
		if o.disp == nil {
			return ErrInvalidInstance
		}
		v, err := oleutil.CallMethod(o.disp, method, params...)
		if err != nil {
			return fmt.Errorf("call %s: %w", method, classify(err))
		}
		_ = v.Clear()
		return nil
	})
}

func (o *comObject) intValue(chain ...string) (int, error) {
	v, err := o.value(chain...)
	if err != nil {
		return 0, err
	}
	return toInt(v)
}

func (o *comObject) floatValue(chain ...string) (float32, error) {
	v, err := o.value(chain...)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float32:
		return n, nil
	case float64:
		return float32(n), nil
	}
	i, err := toInt(v)
	return float32(i), err
}

func (o *comObject) stringValue(chain ...string) (string, error) {
	v, err := o.value(chain...)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s is %T, not a string", strings.Join(chain, "."), v)
	}
	return s, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		return int(n), nil
	case bool:
		if n {
			return int(TriStateTrue), nil
		}
		return int(TriStateFalse), nil
	case float32:
		return int(n), nil
	case float64:
		return int(n), nil
	}
	return 0, fmt.Errorf("unexpected automation value %T", v)
}

type comApplication struct{ comObject }

func (a *comApplication) AddPresentation() (Presentation, error) {
	o, err := a.callObject([]string{"Presentations"}, "Add")
	if err != nil {
		return nil, err
	}
	return &comPresentation{o}, nil
}

func (a *comApplication) ActivePresentation() (Presentation, error) {
	o, err := a.object("ActivePresentation")
	if err != nil {
		return nil, err
	}
	return &comPresentation{o}, nil
}

func (a *comApplication) ActiveWindow() (Window, error) {
	o, err := a.object("ActiveWindow")
	if err != nil {
		return nil, err
	}
	return &comWindow{o}, nil
}

type comWindow struct{ comObject }

func (w *comWindow) ViewType() (ViewType, error) {
	v, err := w.intValue("ViewType")
	return ViewType(v), err
}

func (w *comWindow) ViewSlideIndex() (int, error) {
	return w.intValue("View", "Slide", "SlideIndex")
}

func (w *comWindow) Selection() (Selection, error) {
	o, err := w.object("Selection")
	if err != nil {
		return nil, err
	}
	return &comSelection{o}, nil
}

type comSelection struct{ comObject }

func (s *comSelection) Type() (SelectionType, error) {
	v, err := s.intValue("Type")
	return SelectionType(v), err
}

func (s *comSelection) SlideNumber() (int, error) {
	return s.intValue("SlideRange", "SlideNumber")
}

func (s *comSelection) ShapeNames() ([]string, error) {
	var names []string
	err := s.sta.do(func() error {
		if s.disp == nil {
			return ErrInvalidInstance
		}
		shapeRange, release, err := walk(s.disp, "ShapeRange")
		if err != nil {
			return err
		}
		defer release()
		countVar, err := oleutil.GetProperty(shapeRange, "Count")
		if err != nil {
			return fmt.Errorf("get ShapeRange.Count: %w", classify(err))
		}
		count, err := toInt(countVar.Value())
		_ = countVar.Clear()
		if err != nil {
			return err
		}
		for i := 1; i <= count; i++ {
			item, err := oleutil.CallMethod(shapeRange, "Item", int32(i))
			if err != nil {
				return fmt.Errorf("call ShapeRange.Item(%d): %w", i, classify(err))
			}
			shape := item.ToIDispatch()
			if shape == nil {
				_ = item.Clear()
				return fmt.Errorf("ShapeRange.Item(%d) is not an object", i)
			}
			nameVar, err := oleutil.GetProperty(shape, "Name")
			if err != nil {
				shape.Release()
				return fmt.Errorf("get ShapeRange.Item(%d).Name: %w", i, classify(err))
			}
			names = append(names, nameVar.ToString())
			_ = nameVar.Clear()
			shape.Release()
		}
		return nil
	})
	return names, err
}

type comPresentation struct{ comObject }

func (p *comPresentation) Application() (Application, error) {
	o, err := p.object("Application")
	if err != nil {
		return nil, err
	}
	return &comApplication{o}, nil
}

func (p *comPresentation) SlideCount() (int, error) {
	return p.intValue("Slides", "Count")
}

func (p *comPresentation) Slide(index int) (Slide, error) {
	o, err := p.callObject([]string{"Slides"}, "Item", int32(index))
	if err != nil {
		return nil, err
	}
	return &comSlide{o}, nil
}

func (p *comPresentation) AddSlide(index int, layout SlideLayout) (Slide, error) {
	o, err := p.callObject([]string{"Slides"}, "Add", int32(index), int32(layout))
	if err != nil {
		return nil, err
	}
	return &comSlide{o}, nil
}

func (p *comPresentation) Path() (string, error) {
	return p.stringValue("Path")
}

func (p *comPresentation) FullName() (string, error) {
	return p.stringValue("FullName")
}

type comSlide struct{ comObject }

func (s *comSlide) Index() (int, error) {
	return s.intValue("SlideIndex")
}

func (s *comSlide) Layout() (SlideLayout, error) {
	v, err := s.intValue("Layout")
	return SlideLayout(v), err
}

func (s *comSlide) ShapeCount() (int, error) {
	return s.intValue("Shapes", "Count")
}

func (s *comSlide) Shape(index int) (Shape, error) {
	o, err := s.callObject([]string{"Shapes"}, "Item", int32(index))
	if err != nil {
		return nil, err
	}
	return &comShape{o}, nil
}

func (s *comSlide) Delete() error {
	return s.call("Delete")
}

func (s *comSlide) MoveTo(index int) error {
	return s.call("MoveTo", int32(index))
}

type comShape struct{ comObject }

func (sh *comShape) Name() (string, error) {
	return sh.stringValue("Name")
}

func (sh *comShape) Type() (ShapeType, error) {
	v, err := sh.intValue("Type")
	return ShapeType(v), err
}

func (sh *comShape) HasTextFrame() (TriState, error) {
	v, err := sh.intValue("HasTextFrame")
	return TriState(v), err
}

func (sh *comShape) TextFrame() (TextFrame, error) {
	o, err := sh.object("TextFrame")
	if err != nil {
		return nil, err
	}
	return &comTextFrame{o}, nil
}

func (sh *comShape) FillColor() (int32, error) {
	v, err := sh.intValue("Fill", "ForeColor", "RGB")
	return int32(v), err
}

func (sh *comShape) Left() (float32, error)   { return sh.floatValue("Left") }
func (sh *comShape) Top() (float32, error)    { return sh.floatValue("Top") }
func (sh *comShape) Width() (float32, error)  { return sh.floatValue("Width") }
func (sh *comShape) Height() (float32, error) { return sh.floatValue("Height") }

func (sh *comShape) TableCell(row, col int) (Shape, error) {
	cell, err := sh.callObject([]string{"Table"}, "Cell", int32(row), int32(col))
	if err != nil {
		return nil, err
	}
	defer cell.Release()
	o, err := cell.object("Shape")
	if err != nil {
		return nil, err
	}
	return &comShape{o}, nil
}

type comTextFrame struct{ comObject }

func (tf *comTextFrame) HasText() (TriState, error) {
	v, err := tf.intValue("HasText")
	return TriState(v), err
}

func (tf *comTextFrame) Text() (string, error) {
	return tf.stringValue("TextRange", "Text")
}

func (tf *comTextFrame) Font() (Font, error) {
	o, err := tf.object("TextRange", "Font")
	if err != nil {
		return nil, err
	}
	return &comFont{o}, nil
}

type comFont struct{ comObject }

func (f *comFont) Name() (string, error) {
	return f.stringValue("Name")
}

func (f *comFont) Size() (float32, error) {
	return f.floatValue("Size")
}

func (f *comFont) Color() (int32, error) {
	v, err := f.intValue("Color", "RGB")
	return int32(v), err
}
