package xr

import (
	"github.com/gogpu/xr/driver"
)

// mockTable implements driver.ProcTable with scripted results and call
// counting. Results default to Success.
type mockTable struct {
	createResult  driver.Result
	acquireResult driver.Result
	waitResult    driver.Result
	releaseResult driver.Result
	destroyResult driver.Result

	createCalls  int
	destroyCalls int
	acquireCalls int
	waitCalls    int
	releaseCalls int

	lastCreateInfo driver.SwapchainCreateInfo
	lastWaitInfo   driver.ImageWaitInfo

	acquireIndex uint32

	// enumCounts scripts successive EnumerateImages count results;
	// empty means a fixed count of 2.
	enumCounts []uint32
	enumCalls  int
}

var _ driver.ProcTable = (*mockTable)(nil)

func (m *mockTable) CreateSwapchain(info *driver.SwapchainCreateInfo) (driver.Swapchain, driver.Result) {
	m.createCalls++
	m.lastCreateInfo = *info
	if m.createResult.IsError() {
		return 0, m.createResult
	}
	return driver.Swapchain(m.createCalls), driver.Success
}

func (m *mockTable) DestroySwapchain(sc driver.Swapchain) driver.Result {
	m.destroyCalls++
	return m.destroyResult
}

func (m *mockTable) AcquireImage(sc driver.Swapchain, info *driver.ImageAcquireInfo) (uint32, driver.Result) {
	m.acquireCalls++
	if m.acquireResult.IsError() {
		return 0, m.acquireResult
	}
	return m.acquireIndex, driver.Success
}

func (m *mockTable) WaitImage(sc driver.Swapchain, info *driver.ImageWaitInfo) driver.Result {
	m.waitCalls++
	m.lastWaitInfo = *info
	return m.waitResult
}

func (m *mockTable) ReleaseImage(sc driver.Swapchain, info *driver.ImageReleaseInfo) driver.Result {
	m.releaseCalls++
	return m.releaseResult
}

func (m *mockTable) EnumerateImages(sc driver.Swapchain, images []driver.ImageDescriptor) (uint32, driver.Result) {
	count := uint32(2)
	if len(m.enumCounts) > 0 {
		count = m.enumCounts[m.enumCalls%len(m.enumCounts)]
	}
	m.enumCalls++
	if images == nil {
		return count, driver.Success
	}
	if uint32(len(images)) < count {
		return 0, driver.ErrorValidationFailure
	}
	for i := uint32(0); i < count; i++ {
		images[i] = driver.ImageDescriptor{
			Type:   driver.StructureTypeImageDescriptor,
			Handle: uint64(i) + 1,
		}
	}
	return count, driver.Success
}

// namingTable is a mockTable that also implements driver.DebugNamer.
type namingTable struct {
	mockTable
	nameCalls int
	lastName  string
}

var _ driver.DebugNamer = (*namingTable)(nil)

func (m *namingTable) SetDebugObjectName(info *driver.DebugObjectNameInfo) driver.Result {
	m.nameCalls++
	m.lastName = info.ObjectName
	return driver.Success
}

// mockDriver serves a fixed table from Open.
type mockDriver struct {
	name       string
	tab        driver.ProcTable
	openErr    error
	closeCalls int
}

var _ driver.Driver = (*mockDriver)(nil)

func (d *mockDriver) Name() string { return d.name }

func (d *mockDriver) Open() (driver.ProcTable, error) {
	if d.openErr != nil {
		return nil, d.openErr
	}
	return d.tab, nil
}

func (d *mockDriver) Close() { d.closeCalls++ }

// newMockInstance wires an instance directly to a table, bypassing the
// registry so tests stay independent of global state.
func newMockInstance(tab driver.ProcTable, debugUtils bool) *Instance {
	var exts Extensions
	if debugUtils {
		_, exts.DebugUtils = tab.(driver.DebugNamer)
	}
	return &Instance{
		drv:  &mockDriver{name: "mock", tab: tab},
		tab:  tab,
		exts: exts,
	}
}
