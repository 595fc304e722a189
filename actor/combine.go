package actor

// Combine returns a single Actor whose Start starts every supplied Actor and
// whose Stop stops every supplied Actor, concurrently, waiting for all of
// them to finish. This is how ActorSystem joins N executors and the manager
// into one shutdown call.
func Combine(aa ...Actor) Actor {
	return &combined{actors: aa}
}

type combined struct {
	actors []Actor
}

func (c *combined) Start() {
	for _, a := range c.actors {
		a.Start()
	}
}

func (c *combined) Stop() {
	done := make(chan struct{}, len(c.actors))

	for _, a := range c.actors {
		go func(a Actor) {
			a.Stop()
			done <- struct{}{}
		}(a)
	}

	for range c.actors {
		<-done
	}
}

// Await blocks until every supplied Actor has exited on its own.
func (c *combined) Await() {
	done := make(chan struct{}, len(c.actors))

	for _, a := range c.actors {
		go func(a Actor) {
			a.Await()
			done <- struct{}{}
		}(a)
	}

	for range c.actors {
		<-done
	}
}
