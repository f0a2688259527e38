package loader

// Observer is notified of loader state changes. Calls are synchronous.
type Observer interface {
	LibraryLoaded(lib Library)
	LibraryUnloaded(lib Library)
	LoadFailed(path string, err error)
	InstanceCreated(inst Instance)
	InstanceDestroyed(inst Instance)
}

// NopObserver ignores every notification. Embed it to implement a subset of Observer.
type NopObserver struct{}

// LibraryLoaded implements Observer.
func (NopObserver) LibraryLoaded(Library) {}

// LibraryUnloaded implements Observer.
func (NopObserver) LibraryUnloaded(Library) {}

// LoadFailed implements Observer.
func (NopObserver) LoadFailed(string, error) {}

// InstanceCreated implements Observer.
func (NopObserver) InstanceCreated(Instance) {}

// InstanceDestroyed implements Observer.
func (NopObserver) InstanceDestroyed(Instance) {}

type observers []Observer

func (o observers) libraryLoaded(lib Library) {
	for _, obs := range o {
		obs.LibraryLoaded(lib)
	}
}

func (o observers) libraryUnloaded(lib Library) {
	for _, obs := range o {
		obs.LibraryUnloaded(lib)
	}
}

func (o observers) loadFailed(path string, err error) {
	for _, obs := range o {
		obs.LoadFailed(path, err)
	}
}

func (o observers) instanceCreated(inst Instance) {
	for _, obs := range o {
		obs.InstanceCreated(inst)
	}
}

func (o observers) instanceDestroyed(inst Instance) {
	for _, obs := range o {
		obs.InstanceDestroyed(inst)
	}
}
