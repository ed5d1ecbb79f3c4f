//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/spline"
	"github.com/gogpu/spline/internal/cache"
	"github.com/gogpu/spline/vertex"
)

// defaultPipelineCacheSize bounds the number of cached vertex layouts.
const defaultPipelineCacheSize = 16

// SinkOption configures a Sink during creation.
type SinkOption func(*sinkOptions)

type sinkOptions struct {
	sampleCount   uint32
	pipelineCache int
}

// WithSampleCount sets the multisample count of the render target.
func WithSampleCount(n uint32) SinkOption {
	return func(o *sinkOptions) {
		if n > 0 {
			o.sampleCount = n
		}
	}
}

// WithPipelineCacheSize sets how many vertex layouts keep a live pipeline.
func WithPipelineCacheSize(n int) SinkOption {
	return func(o *sinkOptions) {
		if n > 0 {
			o.pipelineCache = n
		}
	}
}

// upload is one flushed vertex buffer and the draws reading from it.
type upload struct {
	buf   hal.Buffer
	draws []draw
}

type draw struct {
	pipeline hal.RenderPipeline
	offset   uint64
	count    uint32
}

// Sink uploads submitted primitives and records them into render passes.
//
// A Sink is not safe for concurrent use.
type Sink struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
	opts   sinkOptions

	width, height int

	// Shared GPU objects, created on first Flush.
	shaders       [2]hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	uniformBuf    hal.Buffer
	bindGroup     hal.BindGroup

	pipelines *cache.LRU[vertex.Type, hal.RenderPipeline]
	retired   []hal.RenderPipeline // evicted, destroyed on ResetFrame

	staging []byte
	pending []batch
	frame   []upload
}

var _ spline.Submitter = (*Sink)(nil)

// NewSink creates a sink drawing into targets of the given format.
func NewSink(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, opts ...SinkOption) *Sink {
	o := sinkOptions{sampleCount: 1, pipelineCache: defaultPipelineCacheSize}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Sink{
		device: device,
		queue:  queue,
		format: format,
		opts:   o,
	}
	s.pipelines = cache.New[vertex.Type, hal.RenderPipeline](o.pipelineCache)
	s.pipelines.OnEvict = func(_ vertex.Type, p hal.RenderPipeline) {
		s.retired = append(s.retired, p)
	}
	return s
}

// NewSinkFromProvider creates a sink on a device shared by provider, drawing
// into its surface format. The provider must also expose HalDevice() and
// HalQueue() returning hal.Device and hal.Queue.
func NewSinkFromProvider(provider gpucontext.DeviceProvider, opts ...SinkOption) (*Sink, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	if provider == nil {
		return nil, fmt.Errorf("gpu: nil provider")
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("gpu: provider HalQueue is not hal.Queue")
	}
	return NewSink(device, queue, provider.SurfaceFormat(), opts...), nil
}

// SetViewport sets the pixel size of the render target. Vertex positions
// are interpreted as pixel coordinates with the origin at the top left.
func (s *Sink) SetViewport(width, height int) {
	s.width, s.height = width, height
	if s.uniformBuf != nil {
		s.queue.WriteBuffer(s.uniformBuf, 0, viewportBytes(width, height))
	}
}

// Submit decodes p into the staging buffer. p may be reused once Submit
// returns. Primitives that are not triangle lists, or have no position,
// are dropped with a warning.
func (s *Sink) Submit(p spline.Primitive) error {
	if p.Topology != gputypes.PrimitiveTopologyTriangleList || !p.Type.HasPosition() {
		spline.Logger().Warn("gpu: dropped primitive", "topology", p.Topology, "type", p.Type)
		return nil
	}
	if p.Count == 0 {
		return nil
	}
	staging, b, err := stage(s.staging, p)
	if err != nil {
		return err
	}
	s.staging = staging
	s.pending = append(s.pending, b)
	return nil
}

// Flush uploads pending geometry into a new vertex buffer. The draws stay
// part of the frame until ResetFrame.
func (s *Sink) Flush() error {
	if len(s.pending) == 0 {
		return nil
	}
	defer func() {
		s.staging = s.staging[:0]
		s.pending = s.pending[:0]
	}()

	if err := s.ensureShared(); err != nil {
		return err
	}
	draws := make([]draw, 0, len(s.pending))
	for _, b := range s.pending {
		pipeline, err := s.pipelines.GetOrCreate(b.layout, func() (hal.RenderPipeline, error) {
			return s.createPipeline(b.layout)
		})
		if err != nil {
			return err
		}
		draws = append(draws, draw{pipeline: pipeline, offset: uint64(b.offset), count: uint32(b.count)})
	}

	buf, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "spline_vertices",
		Size:  uint64(len(s.staging)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: create vertex buffer: %w", err)
	}
	s.queue.WriteBuffer(buf, 0, s.staging)
	s.frame = append(s.frame, upload{buf: buf, draws: draws})

	spline.Logger().Debug("gpu: flushed", "batches", len(draws), "bytes", len(s.staging))
	return nil
}

// RecordDraws records every flushed draw of the current frame into rp.
func (s *Sink) RecordDraws(rp hal.RenderPassEncoder) {
	if len(s.frame) == 0 {
		return
	}
	rp.SetBindGroup(0, s.bindGroup, nil)
	for _, u := range s.frame {
		for _, d := range u.draws {
			rp.SetPipeline(d.pipeline)
			rp.SetVertexBuffer(0, u.buf, d.offset)
			rp.Draw(d.count, 1, 0, 0)
		}
	}
}

// Draws returns the number of draws recorded by RecordDraws.
func (s *Sink) Draws() int {
	n := 0
	for _, u := range s.frame {
		n += len(u.draws)
	}
	return n
}

// ResetFrame releases the vertex buffers of the current frame. Call it once
// the frame's command buffer has completed.
func (s *Sink) ResetFrame() {
	for _, u := range s.frame {
		s.device.DestroyBuffer(u.buf)
	}
	clear(s.frame)
	s.frame = s.frame[:0]
	for _, p := range s.retired {
		s.device.DestroyRenderPipeline(p)
	}
	s.retired = s.retired[:0]
}

// Destroy releases all GPU resources held by the sink. Safe to call
// multiple times.
func (s *Sink) Destroy() {
	if s.device == nil {
		return
	}
	s.ResetFrame()
	s.pipelines.Clear()
	for _, p := range s.retired {
		s.device.DestroyRenderPipeline(p)
	}
	s.retired = nil
	if s.bindGroup != nil {
		s.device.DestroyBindGroup(s.bindGroup)
		s.bindGroup = nil
	}
	if s.uniformBuf != nil {
		s.device.DestroyBuffer(s.uniformBuf)
		s.uniformBuf = nil
	}
	if s.pipeLayout != nil {
		s.device.DestroyPipelineLayout(s.pipeLayout)
		s.pipeLayout = nil
	}
	if s.uniformLayout != nil {
		s.device.DestroyBindGroupLayout(s.uniformLayout)
		s.uniformLayout = nil
	}
	for i, sh := range s.shaders {
		if sh != nil {
			s.device.DestroyShaderModule(sh)
			s.shaders[i] = nil
		}
	}
}
