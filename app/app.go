// Copyright 2026 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package app

import (
	"context"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mendersoftware/go-lib-micro/log"

	"github.com/mendersoftware/attendancegw/client/nats"
	"github.com/mendersoftware/attendancegw/client/probe"
	"github.com/mendersoftware/attendancegw/client/trigger"
	"github.com/mendersoftware/attendancegw/client/zkteco"
	"github.com/mendersoftware/attendancegw/model"
	"github.com/mendersoftware/attendancegw/store"
	"github.com/mendersoftware/attendancegw/utils"
)

// App errors
var (
	ErrMissingSerial     = errors.New("missing device serial number")
	ErrDeviceNotFound    = errors.New("device not found")
	ErrDeviceUnreachable = errors.New("device unreachable")
)

// IsTimeout reports whether err comes from an outbound device exchange
// that ran out of time
func IsTimeout(err error) bool {
	return errors.Is(err, trigger.ErrTimeout) || errors.Is(err, zkteco.ErrTimeout)
}

// DefaultPullTimeout bounds a pull-fetch session when the request does
// not name a timeout
const DefaultPullTimeout = 10 * time.Second

// DefaultSubjectPrefix is the event bus subject prefix for accepted
// attendance batches
const DefaultSubjectPrefix = "attendance"

// App interface describes app objects
//
//nolint:lll
//go:generate ../utils/mockgen.sh
type App interface {
	HealthCheck(ctx context.Context) error

	Checkin(ctx context.Context, serial string) (string, error)
	IngestPush(ctx context.Context, serial, table string, body []byte) IngestResult
	Announce(ctx context.Context, serial string) string
	FetchLegacy(ctx context.Context) string

	EnqueueCommand(ctx context.Context, serial string, cmd model.Command) error
	SetLegacyCommand(ctx context.Context, cmd model.LegacyCommand) (*model.LegacyCommand, error)
	GetDevice(ctx context.Context, serial string) (*model.Device, error)
	RegisterDevice(ctx context.Context, reg model.DeviceRegistration) error
	DeleteDevice(ctx context.Context, serial string) error

	TriggerSync(ctx context.Context, req model.TriggerRequest) (interface{}, error)
	PullFetch(ctx context.Context, req model.PullRequest) (*model.PullResult, error)
	ProbePort(ctx context.Context, host string, port int) bool

	Shutdown(timeout time.Duration)
	ShutdownDone()
}

// Clients groups the outbound collaborators of the app. Events may be nil,
// in which case accepted batches are not published.
type Clients struct {
	Trigger  trigger.Client
	Terminal zkteco.Client
	Prober   probe.Prober
	Events   nats.Client
}

type Config struct {
	Clock         utils.Clock
	Location      *time.Location
	SubjectPrefix string
	PullTimeout   time.Duration
}

// app is an app object
type app struct {
	store            store.DataStore
	slot             store.CommandSlot
	queue            CommandQueue
	clients          Clients
	shutdownCancels  map[uint32]context.CancelFunc
	shutdownCancelsM *sync.Mutex
	shutdownDone     chan struct{}
	Config
}

// New initializes a new attendance gateway App
func New(
	ds store.DataStore,
	slot store.CommandSlot,
	queue CommandQueue,
	clients Clients,
	config ...Config,
) App {
	conf := Config{
		Clock:         utils.RealClock{},
		Location:      time.UTC,
		SubjectPrefix: DefaultSubjectPrefix,
		PullTimeout:   DefaultPullTimeout,
	}
	for _, cfgIn := range config {
		if cfgIn.Clock != nil {
			conf.Clock = cfgIn.Clock
		}
		if cfgIn.Location != nil {
			conf.Location = cfgIn.Location
		}
		if cfgIn.SubjectPrefix != "" {
			conf.SubjectPrefix = cfgIn.SubjectPrefix
		}
		if cfgIn.PullTimeout > 0 {
			conf.PullTimeout = cfgIn.PullTimeout
		}
	}
	if queue == nil {
		queue = NewCommandQueue()
	}
	return &app{
		store:            ds,
		slot:             slot,
		queue:            queue,
		clients:          clients,
		Config:           conf,
		shutdownCancels:  make(map[uint32]context.CancelFunc),
		shutdownCancelsM: &sync.Mutex{},
		shutdownDone:     make(chan struct{}),
	}
}

// HealthCheck performs a health check and returns an error if it fails
func (a *app) HealthCheck(ctx context.Context) error {
	return a.store.Ping(ctx)
}

// Checkin marks the device online and returns the answer to its poll: the
// oldest queued command in a command envelope, or OK.
func (a *app) Checkin(ctx context.Context, serial string) (string, error) {
	if serial == "" {
		return "", ErrMissingSerial
	}
	now := a.Clock.Now()
	a.setStatus(ctx, serial, model.DeviceStatusOnline, now)

	command, ok := a.queue.DequeueOne(serial)
	if !ok {
		return model.ResponseOK, nil
	}
	log.FromContext(ctx).Infof("delivering queued command to device %s", serial)
	return model.CommandEnvelope(strconv.FormatInt(now.Unix(), 10), command), nil
}

// IngestPush resolves the device and stores the attendance events found in
// body. Failures never reach the device; they are logged and reported in
// the result.
func (a *app) IngestPush(
	ctx context.Context,
	serial string,
	table string,
	body []byte,
) IngestResult {
	l := log.FromContext(ctx)
	res := IngestResult{Format: IngestFormatSkipped}
	if serial == "" {
		res.SkipReason = SkipMissingSerial
		l.Debug("push without serial number ignored")
		return res
	}

	propertyCode, err := a.store.LookupDevice(ctx, serial)
	if err == store.ErrDeviceNotFound {
		res.SkipReason = SkipUnknownDevice
		l.Debugf("push from unknown device %s ignored", serial)
		return res
	} else if err != nil {
		res.SkipReason = SkipRegistryError
		res.Err = err
		l.Errorf("failed to resolve device %s: %s", serial, err)
		return res
	}
	res.PropertyCode = propertyCode

	if !model.IsAttendanceTable(table) {
		res.SkipReason = SkipNotAttendance
		l.Debugf("push for table %q from device %s ignored", table, serial)
		return res
	}

	res.Events, res.Format, res.Dropped = ParseAttendance(body, a.Location)
	if res.Dropped > 0 {
		l.Warnf("dropped %d invalid entries pushed by device %s",
			res.Dropped, serial)
	}
	_, res.Err = a.storeAttendance(ctx, model.AttendanceBatch{
		Serial:       serial,
		PropertyCode: propertyCode,
		Source:       model.AttendanceSourcePush,
		Events:       res.Events,
	})
	return res
}

// storeAttendance appends the batch to the log store and publishes it once
// stored. It returns the number of stored events.
func (a *app) storeAttendance(ctx context.Context, batch model.AttendanceBatch) (int, error) {
	l := log.FromContext(ctx)
	err := a.store.AppendAttendance(ctx, batch.PropertyCode, batch.Serial, batch.Events)
	if err != nil {
		l.Errorf("failed to store attendance from device %s: %s", batch.Serial, err)
		return 0, err
	}
	if len(batch.Events) == 0 {
		return 0, nil
	}
	l.Infof("stored %d attendance events from device %s",
		len(batch.Events), batch.Serial)
	if err = a.publish(batch); err != nil {
		l.Errorf("failed to publish attendance from device %s: %s", batch.Serial, err)
	}
	return len(batch.Events), err
}

func (a *app) publish(batch model.AttendanceBatch) error {
	if a.clients.Events == nil {
		return nil
	}
	data, err := msgpack.Marshal(batch)
	if err != nil {
		return errors.Wrap(err, "failed to encode attendance batch")
	}
	subject := model.GetAttendanceSubject(a.SubjectPrefix, batch.PropertyCode)
	return errors.Wrap(a.clients.Events.Publish(subject, data),
		"failed to publish attendance batch")
}

// Announce answers the legacy "anything for me" request. Every device
// gets the fetch instruction while the slot holds a command.
func (a *app) Announce(ctx context.Context, serial string) string {
	occupied, err := a.slot.Occupied(ctx)
	if err != nil {
		log.FromContext(ctx).Errorf("failed to read legacy command slot: %s", err)
		return model.ResponseOK
	}
	if !occupied {
		return model.ResponseOK
	}
	log.FromContext(ctx).Debugf("legacy command pending, announcing to device %s", serial)
	return model.LegacyFetchInstruction
}

// FetchLegacy takes the legacy command out of the slot. Once fetched the
// command is gone.
func (a *app) FetchLegacy(ctx context.Context) string {
	cmd, err := a.slot.Take(ctx)
	if err != nil {
		log.FromContext(ctx).Errorf("failed to take legacy command: %s", err)
		return model.ResponseOK
	}
	if cmd == nil {
		return model.ResponseOK
	}
	return cmd.Envelope()
}

// EnqueueCommand queues a command for delivery on the next poll of the
// device
func (a *app) EnqueueCommand(ctx context.Context, serial string, cmd model.Command) error {
	if serial == "" {
		return ErrMissingSerial
	}
	a.queue.Enqueue(serial, cmd.Command)
	log.FromContext(ctx).Infof("queued command for device %s", serial)
	return nil
}

// SetLegacyCommand replaces the content of the legacy command slot
func (a *app) SetLegacyCommand(
	ctx context.Context,
	cmd model.LegacyCommand,
) (*model.LegacyCommand, error) {
	if cmd.ID == "" {
		cmd.ID = uuid.NewString()
	}
	if err := a.slot.Put(ctx, cmd); err != nil {
		return nil, errors.Wrap(err, "failed to set legacy command")
	}
	return &cmd, nil
}

// GetDevice returns a device
func (a *app) GetDevice(ctx context.Context, serial string) (*model.Device, error) {
	device, err := a.store.GetDevice(ctx, serial)
	if err == store.ErrDeviceNotFound {
		return nil, ErrDeviceNotFound
	} else if err != nil {
		return nil, err
	} else if device == nil {
		return nil, ErrDeviceNotFound
	}
	device.PendingCommands = a.queue.Len(serial)
	return device, nil
}

// RegisterDevice adds a device to the registry
func (a *app) RegisterDevice(ctx context.Context, reg model.DeviceRegistration) error {
	return a.store.RegisterDevice(ctx, reg.Serial, reg.PropertyCode)
}

// DeleteDevice removes a device from the registry
func (a *app) DeleteDevice(ctx context.Context, serial string) error {
	err := a.store.DeleteDevice(ctx, serial)
	if err == store.ErrDeviceNotFound {
		return ErrDeviceNotFound
	}
	return err
}

// TriggerSync asks the device to push its buffer to the target endpoint.
// The device status follows the outcome when a serial is given.
func (a *app) TriggerSync(ctx context.Context, req model.TriggerRequest) (interface{}, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	id := a.RegisterShutdownCancel(cancel)
	defer a.UnregisterShutdownCancel(id)

	addr := net.JoinHostPort(req.DeviceIP, strconv.Itoa(req.DevicePort))
	res, err := a.clients.Trigger.Trigger(ctx, addr, req.TargetIP, req.TargetPort)
	if req.Serial != "" {
		status := model.DeviceStatusOnline
		if err != nil {
			status = model.DeviceStatusOffline
		}
		a.setStatus(ctx, req.Serial, status, a.Clock.Now())
	}
	if err != nil {
		log.FromContext(ctx).Errorf("sync trigger for %s failed: %s", addr, err)
		return nil, err
	}
	return res, nil
}

// PullFetch reads the attendance log of a terminal. A cheap port probe
// runs first so an unreachable device fails fast. When the request names a
// registered device the records are stored like pushed ones.
func (a *app) PullFetch(ctx context.Context, req model.PullRequest) (*model.PullResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	id := a.RegisterShutdownCancel(cancel)
	defer a.UnregisterShutdownCancel(id)

	l := log.FromContext(ctx)
	if !a.clients.Prober.Probe(ctx, req.IP, req.Port) {
		if req.Serial != "" {
			a.setStatus(ctx, req.Serial, model.DeviceStatusOffline, a.Clock.Now())
		}
		return nil, errors.Wrapf(ErrDeviceUnreachable, "%s:%d", req.IP, req.Port)
	}

	records, err := a.clients.Terminal.FetchAttendance(
		ctx, req.IP, req.Port, req.Timeout(a.PullTimeout),
	)
	if req.Serial != "" {
		status := model.DeviceStatusOnline
		if err != nil {
			status = model.DeviceStatusOffline
		}
		a.setStatus(ctx, req.Serial, status, a.Clock.Now())
	}
	if err != nil {
		l.Errorf("pull from %s:%d failed: %s", req.IP, req.Port, err)
		return nil, err
	}
	if records == nil {
		records = []model.TerminalRecord{}
	}
	result := &model.PullResult{
		Events: records,
		Count:  len(records),
	}
	if req.Serial == "" || len(records) == 0 {
		return result, nil
	}

	propertyCode, err := a.store.LookupDevice(ctx, req.Serial)
	if err == store.ErrDeviceNotFound {
		l.Debugf("pulled records of unknown device %s are not stored", req.Serial)
		return result, nil
	} else if err != nil {
		l.Errorf("failed to resolve device %s: %s", req.Serial, err)
		return result, nil
	}
	events := make([]model.AttendanceEvent, 0, len(records))
	for _, record := range records {
		if record.DeviceUserID == "" {
			continue
		}
		events = append(events, record.Event())
	}
	result.Stored, _ = a.storeAttendance(ctx, model.AttendanceBatch{
		Serial:       req.Serial,
		PropertyCode: propertyCode,
		Source:       model.AttendanceSourcePull,
		Events:       events,
	})
	return result, nil
}

// ProbePort reports whether a TCP connection to host:port can be opened
func (a *app) ProbePort(ctx context.Context, host string, port int) bool {
	return a.clients.Prober.Probe(ctx, host, port)
}

func (a *app) setStatus(ctx context.Context, serial, status string, at time.Time) {
	if err := a.store.SetDeviceStatus(ctx, serial, status, at); err != nil {
		log.FromContext(ctx).Warnf("failed to set status of device %s to %s: %s",
			serial, status, err)
	}
}

// Shutdown cancels the outbound sync operations still in flight, spreading
// the cancellations over timeout
func (a *app) Shutdown(timeout time.Duration) {
	a.shutdownCancelsM.Lock()
	defer a.shutdownCancelsM.Unlock()
	if timeout <= 0 {
		timeout = time.Millisecond
	}
	ticker := time.NewTicker(timeout / time.Duration(len(a.shutdownCancels)+1))
	defer ticker.Stop()
	for _, cancel := range a.shutdownCancels {
		cancel()
		<-ticker.C
	}
	<-ticker.C
	close(a.shutdownDone)
}

func (a *app) ShutdownDone() {
	<-a.shutdownDone
}

var shutdownID uint32

func (a *app) RegisterShutdownCancel(cancel context.CancelFunc) uint32 {
	a.shutdownCancelsM.Lock()
	defer a.shutdownCancelsM.Unlock()
	id := atomic.AddUint32(&shutdownID, 1)
	a.shutdownCancels[id] = cancel
	return id
}

func (a *app) UnregisterShutdownCancel(id uint32) {
	a.shutdownCancelsM.Lock()
	defer a.shutdownCancelsM.Unlock()
	delete(a.shutdownCancels, id)
}
