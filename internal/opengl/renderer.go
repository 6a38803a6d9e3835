package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"world-engine/core"
	"world-engine/scene"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
	HasIndices bool
}

// Backend is the OpenGL rendering backend. It draws into an offscreen
// framebuffer sized by the resolution scale and blits the result up to the
// window framebuffer.
type Backend struct {
	program    uint32
	mvpLoc     int32
	sunDirLoc  int32
	sunColLoc  int32
	ambientLoc int32
	unlitLoc   int32

	gpuMeshes map[*scene.Mesh]*GPUMesh

	fbo          uint32
	colorTex     uint32
	depthRBO     uint32
	fbWidth      int32
	fbHeight     int32
	windowWidth  int32
	windowHeight int32
}

// vertex shader: MVP transform + per-vertex colour passthrough
const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;
layout(location = 3) in vec4 inColor;

uniform mat4 mvp;

out vec4 fragColor;
out vec3 fragNormal;

void main() {
    gl_Position = mvp * vec4(inPosition, 1.0);
    fragColor   = inColor;
    fragNormal  = inNormal;
}
` + "\x00"

// fragment shader: per-vertex colour with directional sun + ambient
const fragSrc = `
#version 410 core
in vec4 fragColor;
in vec3 fragNormal;

uniform vec3 sunDir;
uniform vec4 sunColor; // rgb * intensity in w
uniform vec3 ambient;
uniform int  unlit;

out vec4 outColor;

void main() {
    if (unlit == 1) {
        outColor = fragColor;
        return;
    }
    float diff = max(dot(normalize(fragNormal), -sunDir), 0.0);
    vec3  lit  = fragColor.rgb * (ambient + sunColor.rgb * sunColor.w * diff);
    outColor = vec4(lit, fragColor.a);
}
` + "\x00"

// NewBackend initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewBackend(windowWidth, windowHeight int) (*Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	b := &Backend{
		program:      prog,
		mvpLoc:       gl.GetUniformLocation(prog, gl.Str("mvp\x00")),
		sunDirLoc:    gl.GetUniformLocation(prog, gl.Str("sunDir\x00")),
		sunColLoc:    gl.GetUniformLocation(prog, gl.Str("sunColor\x00")),
		ambientLoc:   gl.GetUniformLocation(prog, gl.Str("ambient\x00")),
		unlitLoc:     gl.GetUniformLocation(prog, gl.Str("unlit\x00")),
		gpuMeshes:    make(map[*scene.Mesh]*GPUMesh),
		windowWidth:  int32(windowWidth),
		windowHeight: int32(windowHeight),
	}
	if err := b.resizeOffscreen(int32(windowWidth), int32(windowHeight)); err != nil {
		return nil, err
	}

	fmt.Printf("OpenGL version: %s\n", gl.GoStr(gl.GetString(gl.VERSION)))
	return b, nil
}

// SetWindowSize records the window framebuffer size used as the blit target.
func (b *Backend) SetWindowSize(width, height int) {
	b.windowWidth = int32(width)
	b.windowHeight = int32(height)
}

// SetRenderSize resizes the offscreen framebuffer the scene is drawn into.
func (b *Backend) SetRenderSize(width, height int) error {
	if int32(width) == b.fbWidth && int32(height) == b.fbHeight {
		return nil
	}
	b.destroyOffscreen()
	return b.resizeOffscreen(int32(width), int32(height))
}

func (b *Backend) resizeOffscreen(width, height int32) error {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	gl.GenFramebuffers(1, &b.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.fbo)

	gl.GenTextures(1, &b.colorTex)
	gl.BindTexture(gl.TEXTURE_2D, b.colorTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, b.colorTex, 0)

	gl.GenRenderbuffers(1, &b.depthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, b.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, width, height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, b.depthRBO)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return fmt.Errorf("offscreen framebuffer incomplete: 0x%x", status)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	b.fbWidth = width
	b.fbHeight = height
	return nil
}

func (b *Backend) destroyOffscreen() {
	if b.fbo != 0 {
		gl.DeleteFramebuffers(1, &b.fbo)
		gl.DeleteTextures(1, &b.colorTex)
		gl.DeleteRenderbuffers(1, &b.depthRBO)
		b.fbo = 0
	}
}

// BeginFrame binds the offscreen target and clears it with the sky colour.
func (b *Backend) BeginFrame(sky core.Color) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.fbo)
	gl.Viewport(0, 0, b.fbWidth, b.fbHeight)
	gl.ClearColor(sky.R, sky.G, sky.B, sky.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(b.program)
}

// SetLighting uploads the frame's sun and ambient terms.
func (b *Backend) SetLighting(sunDir mgl32.Vec3, sunColor core.Color, sunIntensity float32, ambient core.Color) {
	gl.UseProgram(b.program)
	gl.Uniform3f(b.sunDirLoc, sunDir.X(), sunDir.Y(), sunDir.Z())
	gl.Uniform4f(b.sunColLoc, sunColor.R, sunColor.G, sunColor.B, sunIntensity)
	gl.Uniform3f(b.ambientLoc, ambient.R, ambient.G, ambient.B)
}

// DrawMesh uploads mesh data on first use, then issues one draw call.
func (b *Backend) DrawMesh(mesh *scene.Mesh, mvp mgl32.Mat4) {
	gpu := b.ensureUploaded(mesh)
	if gpu == nil {
		return
	}

	// mgl32.Mat4 is column-major, pass directly (transpose=false).
	gl.UniformMatrix4fv(b.mvpLoc, 1, false, &mvp[0])

	unlit := int32(0)
	if mesh.Material != nil && mesh.Material.Unlit {
		unlit = 1
	}
	gl.Uniform1i(b.unlitLoc, unlit)

	mode := uint32(gl.TRIANGLES)
	if mesh.DrawMode == scene.DrawLines {
		mode = gl.LINES
	}

	gl.BindVertexArray(gpu.VAO)
	if gpu.HasIndices {
		gl.DrawElements(mode, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(mode, 0, int32(len(mesh.Vertices)))
	}
	gl.BindVertexArray(0)
}

// EndFrame blits the offscreen colour buffer up to the window framebuffer.
func (b *Backend) EndFrame() {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, b.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(
		0, 0, b.fbWidth, b.fbHeight,
		0, 0, b.windowWidth, b.windowHeight,
		gl.COLOR_BUFFER_BIT, gl.LINEAR)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// ReleaseMesh frees GPU buffers for the given mesh.
func (b *Backend) ReleaseMesh(mesh *scene.Mesh) {
	if gpu, ok := b.gpuMeshes[mesh]; ok {
		gl.DeleteVertexArrays(1, &gpu.VAO)
		gl.DeleteBuffers(1, &gpu.VBO)
		if gpu.HasIndices {
			gl.DeleteBuffers(1, &gpu.EBO)
		}
		delete(b.gpuMeshes, mesh)
		mesh.GPUData = nil
	}
}

// Destroy releases all GPU resources.
func (b *Backend) Destroy() {
	for mesh := range b.gpuMeshes {
		b.ReleaseMesh(mesh)
	}
	b.destroyOffscreen()
	gl.DeleteProgram(b.program)
}

// ensureUploaded uploads vertex/index data if not already done.
func (b *Backend) ensureUploaded(mesh *scene.Mesh) *GPUMesh {
	if gpu, ok := b.gpuMeshes[mesh]; ok {
		return gpu
	}
	if len(mesh.Vertices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))

	gpu := &GPUMesh{
		IndexCount: int32(len(mesh.Indices)),
		HasIndices: len(mesh.Indices) > 0,
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(stride),
		gl.Ptr(mesh.Vertices),
		gl.STATIC_DRAW)

	var v core.Vertex
	posOff := int(unsafe.Offsetof(v.Position))
	normOff := int(unsafe.Offsetof(v.Normal))
	uvOff := int(unsafe.Offsetof(v.UV))
	colorOff := int(unsafe.Offsetof(v.Color))

	// location 0: Position (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(posOff))

	// location 1: Normal (vec3)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(normOff))

	// location 2: UV (vec2)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(uvOff))

	// location 3: Color (vec4 RGBA float32)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 4, gl.FLOAT, false, stride, gl.PtrOffset(colorOff))

	if gpu.HasIndices {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
			len(mesh.Indices)*4,
			gl.Ptr(mesh.Indices),
			gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	b.gpuMeshes[mesh] = gpu
	mesh.GPUData = gpu
	return gpu
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
