// Copyright 2024 Gustavo C. Viegas. All rights reserved.

//go:build windows

package d3d12

import (
	"fmt"
	"math"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

func f32bits(f float32) uint32 { return math.Float32bits(f) }

// COM plumbing: interface identifiers, vtable mirrors and
// thin method wrappers over syscall dispatch. Only the
// methods this back-end drives are wrapped.

var (
	iidIDXGIFactory1    = windows.GUID{Data1: 0x770aae78, Data2: 0xf26f, Data3: 0x4dba, Data4: [8]byte{0xa8, 0x29, 0x25, 0x3c, 0x83, 0xd1, 0xb3, 0x87}}
	iidIDXGIFactory4    = windows.GUID{Data1: 0x1bc6ea02, Data2: 0xef36, Data3: 0x464f, Data4: [8]byte{0xbf, 0x0c, 0x21, 0xca, 0x39, 0xe5, 0x16, 0x8a}}
	iidIDXGIFactory5    = windows.GUID{Data1: 0x7632e1f5, Data2: 0xee65, Data3: 0x4dca, Data4: [8]byte{0x87, 0xfd, 0x84, 0xcd, 0x75, 0xf8, 0x83, 0x8d}}
	iidIDXGIFactory6    = windows.GUID{Data1: 0xc1b6694f, Data2: 0xff09, Data3: 0x44a9, Data4: [8]byte{0xb0, 0x3c, 0x77, 0x90, 0x0a, 0x0a, 0x1d, 0x17}}
	iidIDXGIAdapter1    = windows.GUID{Data1: 0x29038f61, Data2: 0x3839, Data3: 0x4626, Data4: [8]byte{0x91, 0xfd, 0x08, 0x68, 0x79, 0x01, 0x1a, 0x05}}
	iidIDXGISwapChain3  = windows.GUID{Data1: 0x94d99bdb, Data2: 0xf1f8, Data3: 0x4ab0, Data4: [8]byte{0xb2, 0x36, 0x7d, 0xa0, 0x17, 0x0e, 0xda, 0xb1}}
	iidID3D12Device     = windows.GUID{Data1: 0x189819f1, Data2: 0x1db6, Data3: 0x4b57, Data4: [8]byte{0xbe, 0x54, 0x18, 0x21, 0x33, 0x9b, 0x85, 0xf7}}
	iidID3D12CmdQueue   = windows.GUID{Data1: 0x0ec870a6, Data2: 0x5d7e, Data3: 0x4c22, Data4: [8]byte{0x8c, 0xfc, 0x5b, 0xaa, 0xe0, 0x76, 0x16, 0xed}}
	iidID3D12DescHeap   = windows.GUID{Data1: 0x8efb471d, Data2: 0x616c, Data3: 0x4f49, Data4: [8]byte{0x90, 0xf7, 0x12, 0x7b, 0xb7, 0x63, 0xfa, 0x51}}
	iidID3D12Resource   = windows.GUID{Data1: 0x696442be, Data2: 0xa72e, Data3: 0x4059, Data4: [8]byte{0xbc, 0x79, 0x5b, 0x5c, 0x98, 0x04, 0x0f, 0xad}}
	iidID3D12CmdAlloc   = windows.GUID{Data1: 0x6102dee4, Data2: 0xaf59, Data3: 0x4b09, Data4: [8]byte{0xb9, 0x99, 0xb4, 0x4d, 0x73, 0xf0, 0x9b, 0x24}}
	iidID3D12CmdList    = windows.GUID{Data1: 0x5b160d0f, Data2: 0xac1b, Data3: 0x4185, Data4: [8]byte{0x8b, 0xa8, 0xb3, 0xae, 0x42, 0xa5, 0xa4, 0x55}}
	iidID3D12Fence      = windows.GUID{Data1: 0x0a753dcf, Data2: 0xc4d8, Data3: 0x4b91, Data4: [8]byte{0xad, 0xf6, 0xbe, 0x5a, 0x60, 0xd9, 0x5a, 0x76}}
	iidID3D12RootSig    = windows.GUID{Data1: 0xc54a6b66, Data2: 0x72df, Data3: 0x4ee8, Data4: [8]byte{0x8b, 0xe5, 0xa9, 0x46, 0xa1, 0x42, 0x92, 0x14}}
	iidID3D12PSO        = windows.GUID{Data1: 0x765a30f3, Data2: 0xf624, Data3: 0x4c6f, Data4: [8]byte{0xa8, 0x28, 0xac, 0xe9, 0x48, 0x62, 0x24, 0x45}}
	iidID3D12Debug      = windows.GUID{Data1: 0x344488b7, Data2: 0x6846, Data3: 0x474b, Data4: [8]byte{0xb9, 0x89, 0xf0, 0x27, 0x44, 0x82, 0x45, 0xe0}}
)

const (
	_DXGI_ERROR_DEVICE_REMOVED = 0x887a0005
	_E_FAIL                    = 0x80004005
)

func failed(res uintptr) bool { return res&0x80000000 != 0 }

func hresultErr(op string, res uintptr) error {
	return fmt.Errorf("d3d12: %s failed (0x%08X)", op, uint32(res))
}

type iUnknownVtbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
}

func queryInterface(self unsafe.Pointer, vtblQI uintptr, iid *windows.GUID, out unsafe.Pointer) error {
	res, _, _ := syscall.SyscallN(vtblQI, uintptr(self), uintptr(unsafe.Pointer(iid)), uintptr(out))
	if failed(res) {
		return hresultErr("QueryInterface", res)
	}
	return nil
}

func release(self unsafe.Pointer, vtblRelease uintptr) {
	syscall.SyscallN(vtblRelease, uintptr(self))
}

/* DXGI */

type iDXGIObjectVtbl struct {
	iUnknownVtbl
	SetPrivateData          uintptr
	SetPrivateDataInterface uintptr
	GetPrivateData          uintptr
	GetParent               uintptr
}

type iDXGIFactory1Vtbl struct {
	iDXGIObjectVtbl
	EnumAdapters          uintptr
	MakeWindowAssociation uintptr
	GetWindowAssociation  uintptr
	CreateSwapChain       uintptr
	CreateSoftwareAdapter uintptr
	EnumAdapters1         uintptr
	IsCurrent             uintptr
}

type iDXGIFactory1 struct{ vtbl *iDXGIFactory1Vtbl }

func (i *iDXGIFactory1) Release() { release(unsafe.Pointer(i), i.vtbl.Release) }

func (i *iDXGIFactory1) QueryInterface(iid *windows.GUID, out unsafe.Pointer) error {
	return queryInterface(unsafe.Pointer(i), i.vtbl.QueryInterface, iid, out)
}

func (i *iDXGIFactory1) MakeWindowAssociation(hwnd windows.HWND, flags uint32) error {
	res, _, _ := syscall.SyscallN(i.vtbl.MakeWindowAssociation, uintptr(unsafe.Pointer(i)),
		uintptr(hwnd), uintptr(flags))
	if failed(res) {
		return hresultErr("IDXGIFactory1::MakeWindowAssociation", res)
	}
	return nil
}

type iDXGIFactory4Vtbl struct {
	iDXGIFactory1Vtbl
	IsWindowedStereoEnabled      uintptr
	CreateSwapChainForHwnd       uintptr
	CreateSwapChainForCoreWindow uintptr
	GetSharedResourceAdapterLuid uintptr
	RegisterStereoStatusWindow   uintptr
	RegisterStereoStatusEvent    uintptr
	UnregisterStereoStatus       uintptr
	RegisterOcclusionStatusWindow uintptr
	RegisterOcclusionStatusEvent uintptr
	UnregisterOcclusionStatus    uintptr
	CreateSwapChainForComposition uintptr
	GetCreationFlags             uintptr
	EnumAdapterByLuid            uintptr
	EnumWarpAdapter              uintptr
}

type iDXGIFactory4 struct{ vtbl *iDXGIFactory4Vtbl }

func (i *iDXGIFactory4) Release() { release(unsafe.Pointer(i), i.vtbl.Release) }

func (i *iDXGIFactory4) QueryInterface(iid *windows.GUID, out unsafe.Pointer) error {
	return queryInterface(unsafe.Pointer(i), i.vtbl.QueryInterface, iid, out)
}

func (i *iDXGIFactory4) EnumAdapters1(index uint32) (*iDXGIAdapter1, error) {
	var a *iDXGIAdapter1
	res, _, _ := syscall.SyscallN(i.vtbl.EnumAdapters1, uintptr(unsafe.Pointer(i)),
		uintptr(index), uintptr(unsafe.Pointer(&a)))
	if failed(res) {
		return nil, hresultErr("IDXGIFactory4::EnumAdapters1", res)
	}
	return a, nil
}

func (i *iDXGIFactory4) CreateSwapChainForHwnd(queue unsafe.Pointer, hwnd windows.HWND,
	desc *_DXGI_SWAP_CHAIN_DESC1, fullscreen *_DXGI_SWAP_CHAIN_FULLSCREEN_DESC) (*iDXGISwapChain1, error) {
	var sc *iDXGISwapChain1
	res, _, _ := syscall.SyscallN(i.vtbl.CreateSwapChainForHwnd, uintptr(unsafe.Pointer(i)),
		uintptr(queue), uintptr(hwnd), uintptr(unsafe.Pointer(desc)),
		uintptr(unsafe.Pointer(fullscreen)), 0, uintptr(unsafe.Pointer(&sc)))
	if failed(res) {
		return nil, hresultErr("IDXGIFactory4::CreateSwapChainForHwnd", res)
	}
	return sc, nil
}

type iDXGIFactory5Vtbl struct {
	iDXGIFactory4Vtbl
	CheckFeatureSupport uintptr
}

type iDXGIFactory5 struct{ vtbl *iDXGIFactory5Vtbl }

func (i *iDXGIFactory5) Release() { release(unsafe.Pointer(i), i.vtbl.Release) }

func (i *iDXGIFactory5) CheckFeatureSupport(feature uint32, data unsafe.Pointer, size uintptr) error {
	res, _, _ := syscall.SyscallN(i.vtbl.CheckFeatureSupport, uintptr(unsafe.Pointer(i)),
		uintptr(feature), uintptr(data), size)
	if failed(res) {
		return hresultErr("IDXGIFactory5::CheckFeatureSupport", res)
	}
	return nil
}

type iDXGIFactory6Vtbl struct {
	iDXGIFactory5Vtbl
	EnumAdapterByGpuPreference uintptr
}

type iDXGIFactory6 struct{ vtbl *iDXGIFactory6Vtbl }

func (i *iDXGIFactory6) Release() { release(unsafe.Pointer(i), i.vtbl.Release) }

func (i *iDXGIFactory6) EnumAdapterByGpuPreference(index, preference uint32) (*iDXGIAdapter1, error) {
	var a *iDXGIAdapter1
	res, _, _ := syscall.SyscallN(i.vtbl.EnumAdapterByGpuPreference, uintptr(unsafe.Pointer(i)),
		uintptr(index), uintptr(preference), uintptr(unsafe.Pointer(&iidIDXGIAdapter1)),
		uintptr(unsafe.Pointer(&a)))
	if failed(res) {
		return nil, hresultErr("IDXGIFactory6::EnumAdapterByGpuPreference", res)
	}
	return a, nil
}

type iDXGIAdapter1Vtbl struct {
	iDXGIObjectVtbl
	EnumOutputs           uintptr
	GetDesc               uintptr
	CheckInterfaceSupport uintptr
	GetDesc1              uintptr
}

type iDXGIAdapter1 struct{ vtbl *iDXGIAdapter1Vtbl }

func (i *iDXGIAdapter1) Release() { release(unsafe.Pointer(i), i.vtbl.Release) }

func (i *iDXGIAdapter1) GetDesc1(desc *_DXGI_ADAPTER_DESC1) error {
	res, _, _ := syscall.SyscallN(i.vtbl.GetDesc1, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(desc)))
	if failed(res) {
		return hresultErr("IDXGIAdapter1::GetDesc1", res)
	}
	return nil
}

type iDXGISwapChain1Vtbl struct {
	iDXGIObjectVtbl
	GetDevice           uintptr
	Present             uintptr
	GetBuffer           uintptr
	SetFullscreenState  uintptr
	GetFullscreenState  uintptr
	GetDesc             uintptr
	ResizeBuffers       uintptr
	ResizeTarget        uintptr
	GetContainingOutput uintptr
	GetFrameStatistics  uintptr
	GetLastPresentCount uintptr
	GetDesc1            uintptr
	GetFullscreenDesc   uintptr
	GetHwnd             uintptr
	GetCoreWindow       uintptr
	Present1            uintptr
	IsTemporaryMonoSupported uintptr
	GetRestrictToOutput uintptr
	SetBackgroundColor  uintptr
	GetBackgroundColor  uintptr
	SetRotation         uintptr
	GetRotation         uintptr
}

type iDXGISwapChain1 struct{ vtbl *iDXGISwapChain1Vtbl }

func (i *iDXGISwapChain1) Release() { release(unsafe.Pointer(i), i.vtbl.Release) }

func (i *iDXGISwapChain1) QueryInterface(iid *windows.GUID, out unsafe.Pointer) error {
	return queryInterface(unsafe.Pointer(i), i.vtbl.QueryInterface, iid, out)
}

type iDXGISwapChain3Vtbl struct {
	iDXGISwapChain1Vtbl
	SetSourceSize                 uintptr
	GetSourceSize                 uintptr
	SetMaximumFrameLatency        uintptr
	GetMaximumFrameLatency        uintptr
	GetFrameLatencyWaitableObject uintptr
	SetMatrixTransform            uintptr
	GetMatrixTransform            uintptr
	GetCurrentBackBufferIndex     uintptr
	CheckColorSpaceSupport        uintptr
	SetColorSpace1                uintptr
	ResizeBuffers1                uintptr
}

type iDXGISwapChain3 struct{ vtbl *iDXGISwapChain3Vtbl }

func (i *iDXGISwapChain3) Release() { release(unsafe.Pointer(i), i.vtbl.Release) }

func (i *iDXGISwapChain3) GetParent(iid *windows.GUID, out unsafe.Pointer) error {
	res, _, _ := syscall.SyscallN(i.vtbl.GetParent, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(iid)), uintptr(out))
	if failed(res) {
		return hresultErr("IDXGISwapChain3::GetParent", res)
	}
	return nil
}

func (i *iDXGISwapChain3) GetBuffer(index uint32) (*iD3D12Resource, error) {
	var r *iD3D12Resource
	res, _, _ := syscall.SyscallN(i.vtbl.GetBuffer, uintptr(unsafe.Pointer(i)),
		uintptr(index), uintptr(unsafe.Pointer(&iidID3D12Resource)), uintptr(unsafe.Pointer(&r)))
	if failed(res) {
		return nil, hresultErr("IDXGISwapChain3::GetBuffer", res)
	}
	return r, nil
}

func (i *iDXGISwapChain3) Present(syncInterval, flags uint32) error {
	res, _, _ := syscall.SyscallN(i.vtbl.Present, uintptr(unsafe.Pointer(i)),
		uintptr(syncInterval), uintptr(flags))
	if failed(res) {
		return hresultErr("IDXGISwapChain3::Present", res)
	}
	return nil
}

func (i *iDXGISwapChain3) GetCurrentBackBufferIndex() uint32 {
	res, _, _ := syscall.SyscallN(i.vtbl.GetCurrentBackBufferIndex, uintptr(unsafe.Pointer(i)))
	return uint32(res)
}

func (i *iDXGISwapChain3) CheckColorSpaceSupport(cs _DXGI_COLOR_SPACE_TYPE) (uint32, error) {
	var support uint32
	res, _, _ := syscall.SyscallN(i.vtbl.CheckColorSpaceSupport, uintptr(unsafe.Pointer(i)),
		uintptr(cs), uintptr(unsafe.Pointer(&support)))
	if failed(res) {
		return 0, hresultErr("IDXGISwapChain3::CheckColorSpaceSupport", res)
	}
	return support, nil
}

func (i *iDXGISwapChain3) SetColorSpace1(cs _DXGI_COLOR_SPACE_TYPE) error {
	res, _, _ := syscall.SyscallN(i.vtbl.SetColorSpace1, uintptr(unsafe.Pointer(i)), uintptr(cs))
	if failed(res) {
		return hresultErr("IDXGISwapChain3::SetColorSpace1", res)
	}
	return nil
}

/* D3D12 */

type iD3D12ObjectVtbl struct {
	iUnknownVtbl
	GetPrivateData          uintptr
	SetPrivateData          uintptr
	SetPrivateDataInterface uintptr
	SetName                 uintptr
}

func setName(self unsafe.Pointer, vtblSetName uintptr, name string) {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return
	}
	syscall.SyscallN(vtblSetName, uintptr(self), uintptr(unsafe.Pointer(p)))
}

type iD3D12DeviceVtbl struct {
	iD3D12ObjectVtbl
	GetNodeCount                uintptr
	CreateCommandQueue          uintptr
	CreateCommandAllocator      uintptr
	CreateGraphicsPipelineState uintptr
	CreateComputePipelineState  uintptr
	CreateCommandList           uintptr
	CheckFeatureSupport         uintptr
	CreateDescriptorHeap        uintptr
	GetDescriptorHandleIncrementSize uintptr
	CreateRootSignature         uintptr
	CreateConstantBufferView    uintptr
	CreateShaderResourceView    uintptr
	CreateUnorderedAccessView   uintptr
	CreateRenderTargetView      uintptr
	CreateDepthStencilView      uintptr
	CreateSampler               uintptr
	CopyDescriptors             uintptr
	CopyDescriptorsSimple       uintptr
	GetResourceAllocationInfo   uintptr
	GetCustomHeapProperties     uintptr
	CreateCommittedResource     uintptr
	CreateHeap                  uintptr
	CreatePlacedResource        uintptr
	CreateReservedResource      uintptr
	CreateSharedHandle          uintptr
	OpenSharedHandle            uintptr
	OpenSharedHandleByName      uintptr
	MakeResident                uintptr
	Evict                       uintptr
	CreateFence                 uintptr
	GetDeviceRemovedReason      uintptr
	GetCopyableFootprints       uintptr
	CreateQueryHeap             uintptr
	SetStablePowerState         uintptr
	CreateCommandSignature      uintptr
	GetResourceTiling           uintptr
	GetAdapterLuid              uintptr
}

type iD3D12Device struct{ vtbl *iD3D12DeviceVtbl }

func (i *iD3D12Device) Release() { release(unsafe.Pointer(i), i.vtbl.Release) }

func (i *iD3D12Device) CreateCommandQueue(desc *_D3D12_COMMAND_QUEUE_DESC) (*iD3D12CommandQueue, error) {
	var q *iD3D12CommandQueue
	res, _, _ := syscall.SyscallN(i.vtbl.CreateCommandQueue, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(desc)), uintptr(unsafe.Pointer(&iidID3D12CmdQueue)),
		uintptr(unsafe.Pointer(&q)))
	if failed(res) {
		return nil, hresultErr("ID3D12Device::CreateCommandQueue", res)
	}
	return q, nil
}

func (i *iD3D12Device) CreateCommandAllocator(typ int32) (*iD3D12CommandAllocator, error) {
	var a *iD3D12CommandAllocator
	res, _, _ := syscall.SyscallN(i.vtbl.CreateCommandAllocator, uintptr(unsafe.Pointer(i)),
		uintptr(typ), uintptr(unsafe.Pointer(&iidID3D12CmdAlloc)), uintptr(unsafe.Pointer(&a)))
	if failed(res) {
		return nil, hresultErr("ID3D12Device::CreateCommandAllocator", res)
	}
	return a, nil
}

func (i *iD3D12Device) CreateCommandList(nodeMask uint32, typ int32, alloc *iD3D12CommandAllocator) (*iD3D12GraphicsCommandList, error) {
	var l *iD3D12GraphicsCommandList
	res, _, _ := syscall.SyscallN(i.vtbl.CreateCommandList, uintptr(unsafe.Pointer(i)),
		uintptr(nodeMask), uintptr(typ), uintptr(unsafe.Pointer(alloc)), 0,
		uintptr(unsafe.Pointer(&iidID3D12CmdList)), uintptr(unsafe.Pointer(&l)))
	if failed(res) {
		return nil, hresultErr("ID3D12Device::CreateCommandList", res)
	}
	return l, nil
}

func (i *iD3D12Device) CreateDescriptorHeap(desc *_D3D12_DESCRIPTOR_HEAP_DESC) (*iD3D12DescriptorHeap, error) {
	var h *iD3D12DescriptorHeap
	res, _, _ := syscall.SyscallN(i.vtbl.CreateDescriptorHeap, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(desc)), uintptr(unsafe.Pointer(&iidID3D12DescHeap)),
		uintptr(unsafe.Pointer(&h)))
	if failed(res) {
		return nil, hresultErr("ID3D12Device::CreateDescriptorHeap", res)
	}
	return h, nil
}

func (i *iD3D12Device) GetDescriptorHandleIncrementSize(typ int32) uint32 {
	res, _, _ := syscall.SyscallN(i.vtbl.GetDescriptorHandleIncrementSize,
		uintptr(unsafe.Pointer(i)), uintptr(typ))
	return uint32(res)
}

func (i *iD3D12Device) CreateRootSignature(blob unsafe.Pointer, size uintptr) (*iD3D12RootSignature, error) {
	var rs *iD3D12RootSignature
	res, _, _ := syscall.SyscallN(i.vtbl.CreateRootSignature, uintptr(unsafe.Pointer(i)),
		0, uintptr(blob), size, uintptr(unsafe.Pointer(&iidID3D12RootSig)),
		uintptr(unsafe.Pointer(&rs)))
	if failed(res) {
		return nil, hresultErr("ID3D12Device::CreateRootSignature", res)
	}
	return rs, nil
}

func (i *iD3D12Device) CreateGraphicsPipelineState(desc *_D3D12_GRAPHICS_PIPELINE_STATE_DESC) (*iD3D12PipelineState, error) {
	var ps *iD3D12PipelineState
	res, _, _ := syscall.SyscallN(i.vtbl.CreateGraphicsPipelineState, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(desc)), uintptr(unsafe.Pointer(&iidID3D12PSO)),
		uintptr(unsafe.Pointer(&ps)))
	if failed(res) {
		return nil, hresultErr("ID3D12Device::CreateGraphicsPipelineState", res)
	}
	return ps, nil
}

func (i *iD3D12Device) CreateComputePipelineState(desc *_D3D12_COMPUTE_PIPELINE_STATE_DESC) (*iD3D12PipelineState, error) {
	var ps *iD3D12PipelineState
	res, _, _ := syscall.SyscallN(i.vtbl.CreateComputePipelineState, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(desc)), uintptr(unsafe.Pointer(&iidID3D12PSO)),
		uintptr(unsafe.Pointer(&ps)))
	if failed(res) {
		return nil, hresultErr("ID3D12Device::CreateComputePipelineState", res)
	}
	return ps, nil
}

func (i *iD3D12Device) CreateCommittedResource(heap *_D3D12_HEAP_PROPERTIES, heapFlags int32,
	desc *_D3D12_RESOURCE_DESC, initialState _D3D12_RESOURCE_STATES) (*iD3D12Resource, error) {
	var r *iD3D12Resource
	res, _, _ := syscall.SyscallN(i.vtbl.CreateCommittedResource, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(heap)), uintptr(heapFlags), uintptr(unsafe.Pointer(desc)),
		uintptr(initialState), 0, uintptr(unsafe.Pointer(&iidID3D12Resource)),
		uintptr(unsafe.Pointer(&r)))
	if failed(res) {
		return nil, hresultErr("ID3D12Device::CreateCommittedResource", res)
	}
	return r, nil
}

func (i *iD3D12Device) CreateFence(initial uint64) (*iD3D12Fence, error) {
	var f *iD3D12Fence
	res, _, _ := syscall.SyscallN(i.vtbl.CreateFence, uintptr(unsafe.Pointer(i)),
		uintptr(initial), 0, uintptr(unsafe.Pointer(&iidID3D12Fence)), uintptr(unsafe.Pointer(&f)))
	if failed(res) {
		return nil, hresultErr("ID3D12Device::CreateFence", res)
	}
	return f, nil
}

func (i *iD3D12Device) CreateRenderTargetView(r *iD3D12Resource, desc *_D3D12_RENDER_TARGET_VIEW_DESC, dst _D3D12_CPU_DESCRIPTOR_HANDLE) {
	syscall.SyscallN(i.vtbl.CreateRenderTargetView, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(r)), uintptr(unsafe.Pointer(desc)), dst.ptr)
}

func (i *iD3D12Device) CreateDepthStencilView(r *iD3D12Resource, dst _D3D12_CPU_DESCRIPTOR_HANDLE) {
	syscall.SyscallN(i.vtbl.CreateDepthStencilView, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(r)), 0, dst.ptr)
}

func (i *iD3D12Device) CreateConstantBufferView(desc *_D3D12_CONSTANT_BUFFER_VIEW_DESC, dst _D3D12_CPU_DESCRIPTOR_HANDLE) {
	syscall.SyscallN(i.vtbl.CreateConstantBufferView, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(desc)), dst.ptr)
}

func (i *iD3D12Device) CreateShaderResourceView(r *iD3D12Resource, desc *_D3D12_SHADER_RESOURCE_VIEW_DESC, dst _D3D12_CPU_DESCRIPTOR_HANDLE) {
	syscall.SyscallN(i.vtbl.CreateShaderResourceView, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(r)), uintptr(unsafe.Pointer(desc)), dst.ptr)
}

func (i *iD3D12Device) CreateUnorderedAccessView(r *iD3D12Resource, desc *_D3D12_UNORDERED_ACCESS_VIEW_DESC, dst _D3D12_CPU_DESCRIPTOR_HANDLE) {
	syscall.SyscallN(i.vtbl.CreateUnorderedAccessView, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(r)), 0, uintptr(unsafe.Pointer(desc)), dst.ptr)
}

func (i *iD3D12Device) CreateSampler(desc *_D3D12_SAMPLER_DESC, dst _D3D12_CPU_DESCRIPTOR_HANDLE) {
	syscall.SyscallN(i.vtbl.CreateSampler, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(desc)), dst.ptr)
}

func (i *iD3D12Device) GetDeviceRemovedReason() uintptr {
	res, _, _ := syscall.SyscallN(i.vtbl.GetDeviceRemovedReason, uintptr(unsafe.Pointer(i)))
	return res
}

type iD3D12CommandQueueVtbl struct {
	iD3D12ObjectVtbl
	GetDevice             uintptr
	UpdateTileMappings    uintptr
	CopyTileMappings      uintptr
	ExecuteCommandLists   uintptr
	SetMarker             uintptr
	BeginEvent            uintptr
	EndEvent              uintptr
	Signal                uintptr
	Wait                  uintptr
	GetTimestampFrequency uintptr
	GetClockCalibration   uintptr
	GetDesc               uintptr
}

type iD3D12CommandQueue struct{ vtbl *iD3D12CommandQueueVtbl }

func (i *iD3D12CommandQueue) Release() { release(unsafe.Pointer(i), i.vtbl.Release) }

func (i *iD3D12CommandQueue) ExecuteCommandLists(lists []*iD3D12GraphicsCommandList) {
	syscall.SyscallN(i.vtbl.ExecuteCommandLists, uintptr(unsafe.Pointer(i)),
		uintptr(len(lists)), uintptr(unsafe.Pointer(&lists[0])))
}

func (i *iD3D12CommandQueue) Signal(f *iD3D12Fence, value uint64) error {
	res, _, _ := syscall.SyscallN(i.vtbl.Signal, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(f)), uintptr(value))
	if failed(res) {
		return hresultErr("ID3D12CommandQueue::Signal", res)
	}
	return nil
}

type iD3D12CommandAllocatorVtbl struct {
	iD3D12ObjectVtbl
	GetDevice uintptr
	Reset     uintptr
}

type iD3D12CommandAllocator struct{ vtbl *iD3D12CommandAllocatorVtbl }

func (i *iD3D12CommandAllocator) Release() { release(unsafe.Pointer(i), i.vtbl.Release) }

func (i *iD3D12CommandAllocator) Reset() error {
	res, _, _ := syscall.SyscallN(i.vtbl.Reset, uintptr(unsafe.Pointer(i)))
	if failed(res) {
		return hresultErr("ID3D12CommandAllocator::Reset", res)
	}
	return nil
}

type iD3D12GraphicsCommandListVtbl struct {
	iD3D12ObjectVtbl
	GetDevice                          uintptr
	GetType                            uintptr
	Close                              uintptr
	Reset                              uintptr
	ClearState                         uintptr
	DrawInstanced                      uintptr
	DrawIndexedInstanced               uintptr
	Dispatch                           uintptr
	CopyBufferRegion                   uintptr
	CopyTextureRegion                  uintptr
	CopyResource                       uintptr
	CopyTiles                          uintptr
	ResolveSubresource                 uintptr
	IASetPrimitiveTopology             uintptr
	RSSetViewports                     uintptr
	RSSetScissorRects                  uintptr
	OMSetBlendFactor                   uintptr
	OMSetStencilRef                    uintptr
	SetPipelineState                   uintptr
	ResourceBarrier                    uintptr
	ExecuteBundle                      uintptr
	SetDescriptorHeaps                 uintptr
	SetComputeRootSignature            uintptr
	SetGraphicsRootSignature           uintptr
	SetComputeRootDescriptorTable      uintptr
	SetGraphicsRootDescriptorTable     uintptr
	SetComputeRoot32BitConstant        uintptr
	SetGraphicsRoot32BitConstant       uintptr
	SetComputeRoot32BitConstants       uintptr
	SetGraphicsRoot32BitConstants      uintptr
	SetComputeRootConstantBufferView   uintptr
	SetGraphicsRootConstantBufferView  uintptr
	SetComputeRootShaderResourceView   uintptr
	SetGraphicsRootShaderResourceView  uintptr
	SetComputeRootUnorderedAccessView  uintptr
	SetGraphicsRootUnorderedAccessView uintptr
	IASetIndexBuffer                   uintptr
	IASetVertexBuffers                 uintptr
	SOSetTargets                       uintptr
	OMSetRenderTargets                 uintptr
	ClearDepthStencilView              uintptr
	ClearRenderTargetView              uintptr
	ClearUnorderedAccessViewUint       uintptr
	ClearUnorderedAccessViewFloat      uintptr
	DiscardResource                    uintptr
	BeginQuery                         uintptr
	EndQuery                           uintptr
	ResolveQueryData                   uintptr
	SetPredication                     uintptr
	SetMarker                          uintptr
	BeginEvent                         uintptr
	EndEvent                           uintptr
	ExecuteIndirect                    uintptr
}

type iD3D12GraphicsCommandList struct{ vtbl *iD3D12GraphicsCommandListVtbl }

func (i *iD3D12GraphicsCommandList) Release() { release(unsafe.Pointer(i), i.vtbl.Release) }

func (i *iD3D12GraphicsCommandList) Close() error {
	res, _, _ := syscall.SyscallN(i.vtbl.Close, uintptr(unsafe.Pointer(i)))
	if failed(res) {
		return hresultErr("ID3D12GraphicsCommandList::Close", res)
	}
	return nil
}

func (i *iD3D12GraphicsCommandList) Reset(alloc *iD3D12CommandAllocator) error {
	res, _, _ := syscall.SyscallN(i.vtbl.Reset, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(alloc)), 0)
	if failed(res) {
		return hresultErr("ID3D12GraphicsCommandList::Reset", res)
	}
	return nil
}

func (i *iD3D12GraphicsCommandList) DrawInstanced(vertsPerInstance, instances, startVert, startInstance uint32) {
	syscall.SyscallN(i.vtbl.DrawInstanced, uintptr(unsafe.Pointer(i)),
		uintptr(vertsPerInstance), uintptr(instances), uintptr(startVert), uintptr(startInstance))
}

func (i *iD3D12GraphicsCommandList) DrawIndexedInstanced(idxPerInstance, instances, startIdx uint32, baseVert int32, startInstance uint32) {
	syscall.SyscallN(i.vtbl.DrawIndexedInstanced, uintptr(unsafe.Pointer(i)),
		uintptr(idxPerInstance), uintptr(instances), uintptr(startIdx),
		uintptr(baseVert), uintptr(startInstance))
}

func (i *iD3D12GraphicsCommandList) Dispatch(x, y, z uint32) {
	syscall.SyscallN(i.vtbl.Dispatch, uintptr(unsafe.Pointer(i)),
		uintptr(x), uintptr(y), uintptr(z))
}

func (i *iD3D12GraphicsCommandList) CopyBufferRegion(dst *iD3D12Resource, dstOff uint64, src *iD3D12Resource, srcOff, size uint64) {
	syscall.SyscallN(i.vtbl.CopyBufferRegion, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(dst)), uintptr(dstOff), uintptr(unsafe.Pointer(src)),
		uintptr(srcOff), uintptr(size))
}

func (i *iD3D12GraphicsCommandList) CopyTextureRegion(dst unsafe.Pointer, x, y, z uint32, src unsafe.Pointer, box *_D3D12_BOX) {
	syscall.SyscallN(i.vtbl.CopyTextureRegion, uintptr(unsafe.Pointer(i)),
		uintptr(dst), uintptr(x), uintptr(y), uintptr(z), uintptr(src),
		uintptr(unsafe.Pointer(box)))
}

func (i *iD3D12GraphicsCommandList) IASetPrimitiveTopology(t _D3D_PRIMITIVE_TOPOLOGY) {
	syscall.SyscallN(i.vtbl.IASetPrimitiveTopology, uintptr(unsafe.Pointer(i)), uintptr(t))
}

func (i *iD3D12GraphicsCommandList) RSSetViewports(vps []_D3D12_VIEWPORT) {
	syscall.SyscallN(i.vtbl.RSSetViewports, uintptr(unsafe.Pointer(i)),
		uintptr(len(vps)), uintptr(unsafe.Pointer(&vps[0])))
}

func (i *iD3D12GraphicsCommandList) RSSetScissorRects(rects []_D3D12_RECT) {
	syscall.SyscallN(i.vtbl.RSSetScissorRects, uintptr(unsafe.Pointer(i)),
		uintptr(len(rects)), uintptr(unsafe.Pointer(&rects[0])))
}

func (i *iD3D12GraphicsCommandList) OMSetBlendFactor(factor *[4]float32) {
	syscall.SyscallN(i.vtbl.OMSetBlendFactor, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(factor)))
}

func (i *iD3D12GraphicsCommandList) OMSetStencilRef(ref uint32) {
	syscall.SyscallN(i.vtbl.OMSetStencilRef, uintptr(unsafe.Pointer(i)), uintptr(ref))
}

func (i *iD3D12GraphicsCommandList) SetPipelineState(ps *iD3D12PipelineState) {
	syscall.SyscallN(i.vtbl.SetPipelineState, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(ps)))
}

func (i *iD3D12GraphicsCommandList) ResourceBarrier(barriers []_D3D12_RESOURCE_BARRIER) {
	syscall.SyscallN(i.vtbl.ResourceBarrier, uintptr(unsafe.Pointer(i)),
		uintptr(len(barriers)), uintptr(unsafe.Pointer(&barriers[0])))
}

func (i *iD3D12GraphicsCommandList) SetDescriptorHeaps(heaps []*iD3D12DescriptorHeap) {
	syscall.SyscallN(i.vtbl.SetDescriptorHeaps, uintptr(unsafe.Pointer(i)),
		uintptr(len(heaps)), uintptr(unsafe.Pointer(&heaps[0])))
}

func (i *iD3D12GraphicsCommandList) SetGraphicsRootSignature(rs *iD3D12RootSignature) {
	syscall.SyscallN(i.vtbl.SetGraphicsRootSignature, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(rs)))
}

func (i *iD3D12GraphicsCommandList) SetComputeRootSignature(rs *iD3D12RootSignature) {
	syscall.SyscallN(i.vtbl.SetComputeRootSignature, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(rs)))
}

func (i *iD3D12GraphicsCommandList) SetGraphicsRootDescriptorTable(param uint32, base _D3D12_GPU_DESCRIPTOR_HANDLE) {
	syscall.SyscallN(i.vtbl.SetGraphicsRootDescriptorTable, uintptr(unsafe.Pointer(i)),
		uintptr(param), uintptr(base.ptr))
}

func (i *iD3D12GraphicsCommandList) SetComputeRootDescriptorTable(param uint32, base _D3D12_GPU_DESCRIPTOR_HANDLE) {
	syscall.SyscallN(i.vtbl.SetComputeRootDescriptorTable, uintptr(unsafe.Pointer(i)),
		uintptr(param), uintptr(base.ptr))
}

func (i *iD3D12GraphicsCommandList) SetGraphicsRootConstantBufferView(param uint32, addr uint64) {
	syscall.SyscallN(i.vtbl.SetGraphicsRootConstantBufferView, uintptr(unsafe.Pointer(i)),
		uintptr(param), uintptr(addr))
}

func (i *iD3D12GraphicsCommandList) IASetIndexBuffer(view *_D3D12_INDEX_BUFFER_VIEW) {
	syscall.SyscallN(i.vtbl.IASetIndexBuffer, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(view)))
}

func (i *iD3D12GraphicsCommandList) IASetVertexBuffers(start uint32, views []_D3D12_VERTEX_BUFFER_VIEW) {
	syscall.SyscallN(i.vtbl.IASetVertexBuffers, uintptr(unsafe.Pointer(i)),
		uintptr(start), uintptr(len(views)), uintptr(unsafe.Pointer(&views[0])))
}

func (i *iD3D12GraphicsCommandList) OMSetRenderTargets(rtvs []_D3D12_CPU_DESCRIPTOR_HANDLE, dsv *_D3D12_CPU_DESCRIPTOR_HANDLE) {
	var p unsafe.Pointer
	if len(rtvs) > 0 {
		p = unsafe.Pointer(&rtvs[0])
	}
	syscall.SyscallN(i.vtbl.OMSetRenderTargets, uintptr(unsafe.Pointer(i)),
		uintptr(len(rtvs)), uintptr(p), 0, uintptr(unsafe.Pointer(dsv)))
}

func (i *iD3D12GraphicsCommandList) ClearRenderTargetView(rtv _D3D12_CPU_DESCRIPTOR_HANDLE, color *[4]float32) {
	syscall.SyscallN(i.vtbl.ClearRenderTargetView, uintptr(unsafe.Pointer(i)),
		rtv.ptr, uintptr(unsafe.Pointer(color)), 0, 0)
}

func (i *iD3D12GraphicsCommandList) ClearDepthStencilView(dsv _D3D12_CPU_DESCRIPTOR_HANDLE, flags uint32, depth float32, stencil uint8) {
	syscall.SyscallN(i.vtbl.ClearDepthStencilView, uintptr(unsafe.Pointer(i)),
		dsv.ptr, uintptr(flags), uintptr(f32bits(depth)), uintptr(stencil), 0, 0)
}

type iD3D12FenceVtbl struct {
	iD3D12ObjectVtbl
	GetDevice            uintptr
	GetCompletedValue    uintptr
	SetEventOnCompletion uintptr
	Signal               uintptr
}

type iD3D12Fence struct{ vtbl *iD3D12FenceVtbl }

func (i *iD3D12Fence) Release() { release(unsafe.Pointer(i), i.vtbl.Release) }

func (i *iD3D12Fence) GetCompletedValue() uint64 {
	res, _, _ := syscall.SyscallN(i.vtbl.GetCompletedValue, uintptr(unsafe.Pointer(i)))
	return uint64(res)
}

func (i *iD3D12Fence) SetEventOnCompletion(value uint64, event windows.Handle) error {
	res, _, _ := syscall.SyscallN(i.vtbl.SetEventOnCompletion, uintptr(unsafe.Pointer(i)),
		uintptr(value), uintptr(event))
	if failed(res) {
		return hresultErr("ID3D12Fence::SetEventOnCompletion", res)
	}
	return nil
}

type iD3D12DescriptorHeapVtbl struct {
	iD3D12ObjectVtbl
	GetDevice                         uintptr
	GetDesc                           uintptr
	GetCPUDescriptorHandleForHeapStart uintptr
	GetGPUDescriptorHandleForHeapStart uintptr
}

type iD3D12DescriptorHeap struct{ vtbl *iD3D12DescriptorHeapVtbl }

func (i *iD3D12DescriptorHeap) Release() { release(unsafe.Pointer(i), i.vtbl.Release) }

// The C header declares these two as returning the handle
// by value, but the ABI passes a hidden result pointer.
func (i *iD3D12DescriptorHeap) GetCPUDescriptorHandleForHeapStart() _D3D12_CPU_DESCRIPTOR_HANDLE {
	var h _D3D12_CPU_DESCRIPTOR_HANDLE
	syscall.SyscallN(i.vtbl.GetCPUDescriptorHandleForHeapStart, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(&h)))
	return h
}

func (i *iD3D12DescriptorHeap) GetGPUDescriptorHandleForHeapStart() _D3D12_GPU_DESCRIPTOR_HANDLE {
	var h _D3D12_GPU_DESCRIPTOR_HANDLE
	syscall.SyscallN(i.vtbl.GetGPUDescriptorHandleForHeapStart, uintptr(unsafe.Pointer(i)),
		uintptr(unsafe.Pointer(&h)))
	return h
}

type iD3D12ResourceVtbl struct {
	iD3D12ObjectVtbl
	GetDevice            uintptr
	Map                  uintptr
	Unmap                uintptr
	GetDesc              uintptr
	GetGPUVirtualAddress uintptr
	WriteToSubresource   uintptr
	ReadFromSubresource  uintptr
	GetHeapProperties    uintptr
}

type iD3D12Resource struct{ vtbl *iD3D12ResourceVtbl }

func (i *iD3D12Resource) Release() { release(unsafe.Pointer(i), i.vtbl.Release) }

func (i *iD3D12Resource) SetName(name string) {
	setName(unsafe.Pointer(i), i.vtbl.SetName, name)
}

func (i *iD3D12Resource) Map(subresource uint32, readRange *_D3D12_RANGE) (unsafe.Pointer, error) {
	var p unsafe.Pointer
	res, _, _ := syscall.SyscallN(i.vtbl.Map, uintptr(unsafe.Pointer(i)),
		uintptr(subresource), uintptr(unsafe.Pointer(readRange)), uintptr(unsafe.Pointer(&p)))
	if failed(res) {
		return nil, hresultErr("ID3D12Resource::Map", res)
	}
	return p, nil
}

func (i *iD3D12Resource) Unmap(subresource uint32) {
	syscall.SyscallN(i.vtbl.Unmap, uintptr(unsafe.Pointer(i)), uintptr(subresource), 0)
}

// GetDesc uses a hidden result pointer, like the
// descriptor-handle getters above.
func (i *iD3D12Resource) GetDesc() _D3D12_RESOURCE_DESC {
	var d _D3D12_RESOURCE_DESC
	syscall.SyscallN(i.vtbl.GetDesc, uintptr(unsafe.Pointer(i)), uintptr(unsafe.Pointer(&d)))
	return d
}

func (i *iD3D12Resource) GetGPUVirtualAddress() uint64 {
	res, _, _ := syscall.SyscallN(i.vtbl.GetGPUVirtualAddress, uintptr(unsafe.Pointer(i)))
	return uint64(res)
}

type iD3D12RootSignatureVtbl struct {
	iD3D12ObjectVtbl
	GetDevice uintptr
}

type iD3D12RootSignature struct{ vtbl *iD3D12RootSignatureVtbl }

func (i *iD3D12RootSignature) Release() { release(unsafe.Pointer(i), i.vtbl.Release) }

type iD3D12PipelineStateVtbl struct {
	iD3D12ObjectVtbl
	GetDevice      uintptr
	GetCachedBlob  uintptr
}

type iD3D12PipelineState struct{ vtbl *iD3D12PipelineStateVtbl }

func (i *iD3D12PipelineState) Release() { release(unsafe.Pointer(i), i.vtbl.Release) }

type iD3DBlobVtbl struct {
	iUnknownVtbl
	GetBufferPointer uintptr
	GetBufferSize    uintptr
}

type iD3DBlob struct{ vtbl *iD3DBlobVtbl }

func (i *iD3DBlob) Release() { release(unsafe.Pointer(i), i.vtbl.Release) }

func (i *iD3DBlob) GetBufferPointer() unsafe.Pointer {
	res, _, _ := syscall.SyscallN(i.vtbl.GetBufferPointer, uintptr(unsafe.Pointer(i)))
	return unsafe.Pointer(res)
}

func (i *iD3DBlob) GetBufferSize() uintptr {
	res, _, _ := syscall.SyscallN(i.vtbl.GetBufferSize, uintptr(unsafe.Pointer(i)))
	return res
}

// Bytes copies the blob contents into Go memory.
func (i *iD3DBlob) Bytes() []byte {
	p := i.GetBufferPointer()
	n := i.GetBufferSize()
	if p == nil || n == 0 {
		return nil
	}
	return append([]byte(nil), unsafe.Slice((*byte)(p), n)...)
}

// String interprets the blob as a NUL-terminated message.
func (i *iD3DBlob) String() string {
	b := i.Bytes()
	for j, c := range b {
		if c == 0 {
			return string(b[:j])
		}
	}
	return string(b)
}

type iD3D12DebugVtbl struct {
	iUnknownVtbl
	EnableDebugLayer uintptr
}

type iD3D12Debug struct{ vtbl *iD3D12DebugVtbl }

func (i *iD3D12Debug) Release() { release(unsafe.Pointer(i), i.vtbl.Release) }

func (i *iD3D12Debug) EnableDebugLayer() {
	syscall.SyscallN(i.vtbl.EnableDebugLayer, uintptr(unsafe.Pointer(i)))
}

/* Native structures */

type _DXGI_SAMPLE_DESC struct {
	Count   uint32
	Quality uint32
}

type _DXGI_RATIONAL struct {
	Numerator   uint32
	Denominator uint32
}

type _DXGI_SWAP_CHAIN_DESC1 struct {
	Width       uint32
	Height      uint32
	Format      _DXGI_FORMAT
	Stereo      int32
	SampleDesc  _DXGI_SAMPLE_DESC
	BufferUsage uint32
	BufferCount uint32
	Scaling     uint32
	SwapEffect  uint32
	AlphaMode   uint32
	Flags       uint32
}

type _DXGI_SWAP_CHAIN_FULLSCREEN_DESC struct {
	RefreshRate      _DXGI_RATIONAL
	ScanlineOrdering uint32
	Scaling          uint32
	Windowed         int32
}

type _LUID struct {
	LowPart  uint32
	HighPart int32
}

type _DXGI_ADAPTER_DESC1 struct {
	Description           [128]uint16
	VendorId              uint32
	DeviceId              uint32
	SubSysId              uint32
	Revision              uint32
	DedicatedVideoMemory  uintptr
	DedicatedSystemMemory uintptr
	SharedSystemMemory    uintptr
	AdapterLuid           _LUID
	Flags                 uint32
}

type _D3D12_COMMAND_QUEUE_DESC struct {
	Type     int32
	Priority int32
	Flags    uint32
	NodeMask uint32
}

const _D3D12_COMMAND_LIST_TYPE_DIRECT = 0

type _D3D12_DESCRIPTOR_HEAP_DESC struct {
	Type           int32
	NumDescriptors uint32
	Flags          int32
	NodeMask       uint32
}

const (
	_D3D12_DESCRIPTOR_HEAP_TYPE_CBV_SRV_UAV = 0
	_D3D12_DESCRIPTOR_HEAP_TYPE_SAMPLER     = 1
	_D3D12_DESCRIPTOR_HEAP_TYPE_RTV         = 2
	_D3D12_DESCRIPTOR_HEAP_TYPE_DSV         = 3

	_D3D12_DESCRIPTOR_HEAP_FLAG_NONE           = 0
	_D3D12_DESCRIPTOR_HEAP_FLAG_SHADER_VISIBLE = 1
)

type _D3D12_CPU_DESCRIPTOR_HANDLE struct{ ptr uintptr }

// Offset advances the handle by n descriptors of the given
// increment size.
func (h *_D3D12_CPU_DESCRIPTOR_HANDLE) Offset(n int, incrementSize uint32) {
	h.ptr += uintptr(n) * uintptr(incrementSize)
}

type _D3D12_GPU_DESCRIPTOR_HANDLE struct{ ptr uint64 }

func (h *_D3D12_GPU_DESCRIPTOR_HANDLE) Offset(n int, incrementSize uint32) {
	h.ptr += uint64(n) * uint64(incrementSize)
}

type _D3D12_HEAP_PROPERTIES struct {
	Type                 _D3D12_HEAP_TYPE
	CPUPageProperty      int32
	MemoryPoolPreference int32
	CreationNodeMask     uint32
	VisibleNodeMask      uint32
}

const (
	_D3D12_CPU_PAGE_PROPERTY_UNKNOWN = 0
	_D3D12_MEMORY_POOL_UNKNOWN       = 0
	_D3D12_HEAP_FLAG_NONE            = 0
)

const (
	_D3D12_RESOURCE_DIMENSION_BUFFER    = 1
	_D3D12_RESOURCE_DIMENSION_TEXTURE2D = 3
	_D3D12_RESOURCE_DIMENSION_TEXTURE3D = 4

	_D3D12_TEXTURE_LAYOUT_UNKNOWN   = 0
	_D3D12_TEXTURE_LAYOUT_ROW_MAJOR = 1
)

type _D3D12_RESOURCE_DESC struct {
	Dimension        int32
	Alignment        uint64
	Width            uint64
	Height           uint32
	DepthOrArraySize uint16
	MipLevels        uint16
	Format           _DXGI_FORMAT
	SampleDesc       _DXGI_SAMPLE_DESC
	Layout           int32
	Flags            _D3D12_RESOURCE_FLAGS
}

const (
	_D3D12_RESOURCE_BARRIER_TYPE_TRANSITION = 0
	_D3D12_RESOURCE_BARRIER_FLAG_NONE       = 0
)

type _D3D12_RESOURCE_TRANSITION_BARRIER struct {
	PResource   *iD3D12Resource
	Subresource uint32
	StateBefore _D3D12_RESOURCE_STATES
	StateAfter  _D3D12_RESOURCE_STATES
}

type _D3D12_RESOURCE_BARRIER struct {
	Type       int32
	Flags      int32
	Transition _D3D12_RESOURCE_TRANSITION_BARRIER
}

type _D3D12_VIEWPORT struct {
	TopLeftX float32
	TopLeftY float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

type _D3D12_RECT struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

const (
	_D3D12_RTV_DIMENSION_TEXTURE2D = 4
	_D3D12_SRV_DIMENSION_TEXTURE2D = 4
	_D3D12_UAV_DIMENSION_TEXTURE2D = 4
	_D3D12_UAV_DIMENSION_BUFFER    = 1

	_D3D12_DEFAULT_SHADER_4_COMPONENT_MAPPING = 0x1688

	_D3D12_CLEAR_FLAG_DEPTH   = 0x1
	_D3D12_CLEAR_FLAG_STENCIL = 0x2
)

type _D3D12_RENDER_TARGET_VIEW_DESC struct {
	Format        _DXGI_FORMAT
	ViewDimension int32
	MipSlice      uint32
	PlaneSlice    uint32
	_             [2]uint32
}

type _D3D12_CONSTANT_BUFFER_VIEW_DESC struct {
	BufferLocation uint64
	SizeInBytes    uint32
}

type _D3D12_SHADER_RESOURCE_VIEW_DESC struct {
	Format                  _DXGI_FORMAT
	ViewDimension           int32
	Shader4ComponentMapping uint32
	MostDetailedMip         uint32
	MipLevels               uint32
	PlaneSlice              uint32
	ResourceMinLODClamp     float32
}

const _D3D12_BUFFER_UAV_FLAG_RAW = 0x1

// The union of the UAV description sized for its largest
// member (Buffer). Texture views use the leading fields
// only, which the zero value covers.
type _D3D12_UNORDERED_ACCESS_VIEW_DESC struct {
	Format               _DXGI_FORMAT
	ViewDimension        int32
	FirstElement         uint64
	NumElements          uint32
	StructureByteStride  uint32
	CounterOffsetInBytes uint64
	Flags                uint32
	_                    uint32
}

type _D3D12_SAMPLER_DESC struct {
	Filter         _D3D12_FILTER
	AddressU       _D3D12_TEXTURE_ADDRESS_MODE
	AddressV       _D3D12_TEXTURE_ADDRESS_MODE
	AddressW       _D3D12_TEXTURE_ADDRESS_MODE
	MipLODBias     float32
	MaxAnisotropy  uint32
	ComparisonFunc _D3D12_COMPARISON_FUNC
	BorderColor    [4]float32
	MinLOD         float32
	MaxLOD         float32
}

type _D3D12_RANGE struct {
	Begin uintptr
	End   uintptr
}

type _D3D12_BOX struct {
	Left   uint32
	Top    uint32
	Front  uint32
	Right  uint32
	Bottom uint32
	Back   uint32
}

type _D3D12_VERTEX_BUFFER_VIEW struct {
	BufferLocation uint64
	SizeInBytes    uint32
	StrideInBytes  uint32
}

type _D3D12_INDEX_BUFFER_VIEW struct {
	BufferLocation uint64
	SizeInBytes    uint32
	Format         _DXGI_FORMAT
}

const (
	_D3D12_TEXTURE_COPY_TYPE_SUBRESOURCE_INDEX = 0
	_D3D12_TEXTURE_COPY_TYPE_PLACED_FOOTPRINT  = 1
)

type _D3D12_SUBRESOURCE_FOOTPRINT struct {
	Format   _DXGI_FORMAT
	Width    uint32
	Height   uint32
	Depth    uint32
	RowPitch uint32
}

type _D3D12_PLACED_SUBRESOURCE_FOOTPRINT struct {
	Offset    uint64
	Footprint _D3D12_SUBRESOURCE_FOOTPRINT
	_         uint32
}

// The two variants of the D3D12_TEXTURE_COPY_LOCATION
// union, laid out to the same size.
type _D3D12_TEXTURE_COPY_LOCATION_PLACED struct {
	PResource       *iD3D12Resource
	Type            uint32
	_               uint32
	PlacedFootprint _D3D12_PLACED_SUBRESOURCE_FOOTPRINT
}

type _D3D12_TEXTURE_COPY_LOCATION_SUBRESOURCE struct {
	PResource        *iD3D12Resource
	Type             uint32
	_                uint32
	SubresourceIndex uint32
	_                [7]uint32
}

type _D3D12_SHADER_BYTECODE struct {
	PShaderBytecode *byte
	BytecodeLength  uintptr
}

type _D3D12_STREAM_OUTPUT_DESC struct {
	PSODeclaration   uintptr
	NumEntries       uint32
	PBufferStrides   uintptr
	NumStrides       uint32
	RasterizedStream uint32
}

type _D3D12_RENDER_TARGET_BLEND_DESC struct {
	BlendEnable           int32
	LogicOpEnable         int32
	SrcBlend              _D3D12_BLEND
	DestBlend             _D3D12_BLEND
	BlendOp               _D3D12_BLEND_OP
	SrcBlendAlpha         _D3D12_BLEND
	DestBlendAlpha        _D3D12_BLEND
	BlendOpAlpha          _D3D12_BLEND_OP
	LogicOp               int32
	RenderTargetWriteMask uint8
	_                     [3]byte
}

type _D3D12_BLEND_DESC struct {
	AlphaToCoverageEnable  int32
	IndependentBlendEnable int32
	RenderTarget           [_D3D12_SIMULTANEOUS_RENDER_TARGET_COUNT]_D3D12_RENDER_TARGET_BLEND_DESC
}

type _D3D12_RASTERIZER_DESC struct {
	FillMode              _D3D12_FILL_MODE
	CullMode              _D3D12_CULL_MODE
	FrontCounterClockwise int32
	DepthBias             int32
	DepthBiasClamp        float32
	SlopeScaledDepthBias  float32
	DepthClipEnable       int32
	MultisampleEnable     int32
	AntialiasedLineEnable int32
	ForcedSampleCount     uint32
	ConservativeRaster    int32
}

type _D3D12_DEPTH_STENCILOP_DESC struct {
	StencilFailOp      _D3D12_STENCIL_OP
	StencilDepthFailOp _D3D12_STENCIL_OP
	StencilPassOp      _D3D12_STENCIL_OP
	StencilFunc        _D3D12_COMPARISON_FUNC
}

type _D3D12_DEPTH_STENCIL_DESC struct {
	DepthEnable      int32
	DepthWriteMask   int32
	DepthFunc        _D3D12_COMPARISON_FUNC
	StencilEnable    int32
	StencilReadMask  uint8
	StencilWriteMask uint8
	_                [2]byte
	FrontFace        _D3D12_DEPTH_STENCILOP_DESC
	BackFace         _D3D12_DEPTH_STENCILOP_DESC
}

type _D3D12_INPUT_ELEMENT_DESC struct {
	SemanticName         *byte
	SemanticIndex        uint32
	Format               _DXGI_FORMAT
	InputSlot            uint32
	AlignedByteOffset    uint32
	InputSlotClass       _D3D12_INPUT_CLASSIFICATION
	InstanceDataStepRate uint32
}

type _D3D12_INPUT_LAYOUT_DESC struct {
	PInputElementDescs *_D3D12_INPUT_ELEMENT_DESC
	NumElements        uint32
}

type _D3D12_CACHED_PIPELINE_STATE struct {
	PCachedBlob           uintptr
	CachedBlobSizeInBytes uintptr
}

type _D3D12_GRAPHICS_PIPELINE_STATE_DESC struct {
	PRootSignature        *iD3D12RootSignature
	VS                    _D3D12_SHADER_BYTECODE
	PS                    _D3D12_SHADER_BYTECODE
	DS                    _D3D12_SHADER_BYTECODE
	HS                    _D3D12_SHADER_BYTECODE
	GS                    _D3D12_SHADER_BYTECODE
	StreamOutput          _D3D12_STREAM_OUTPUT_DESC
	BlendState            _D3D12_BLEND_DESC
	SampleMask            uint32
	RasterizerState       _D3D12_RASTERIZER_DESC
	DepthStencilState     _D3D12_DEPTH_STENCIL_DESC
	InputLayout           _D3D12_INPUT_LAYOUT_DESC
	IBStripCutValue       int32
	PrimitiveTopologyType _D3D12_PRIMITIVE_TOPOLOGY_TYPE
	NumRenderTargets      uint32
	RTVFormats            [8]_DXGI_FORMAT
	DSVFormat             _DXGI_FORMAT
	SampleDesc            _DXGI_SAMPLE_DESC
	NodeMask              uint32
	CachedPSO             _D3D12_CACHED_PIPELINE_STATE
	Flags                 int32
}

type _D3D12_COMPUTE_PIPELINE_STATE_DESC struct {
	PRootSignature *iD3D12RootSignature
	CS             _D3D12_SHADER_BYTECODE
	NodeMask       uint32
	CachedPSO      _D3D12_CACHED_PIPELINE_STATE
	Flags          int32
}

type _D3D12_DESCRIPTOR_RANGE struct {
	RangeType                         _D3D12_DESCRIPTOR_RANGE_TYPE
	NumDescriptors                    uint32
	BaseShaderRegister                uint32
	RegisterSpace                     uint32
	OffsetInDescriptorsFromTableStart uint32
}

type _D3D12_ROOT_DESCRIPTOR_TABLE struct {
	NumDescriptorRanges uint32
	_                   uint32
	PDescriptorRanges   *_D3D12_DESCRIPTOR_RANGE
}

type _D3D12_ROOT_PARAMETER struct {
	ParameterType    uint32
	_                uint32
	DescriptorTable  _D3D12_ROOT_DESCRIPTOR_TABLE
	ShaderVisibility uint32
	_                uint32
}

type _D3D12_ROOT_SIGNATURE_DESC struct {
	NumParameters     uint32
	_                 uint32
	PParameters       *_D3D12_ROOT_PARAMETER
	NumStaticSamplers uint32
	_                 uint32
	PStaticSamplers   uintptr
	Flags             uint32
	_                 uint32
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
