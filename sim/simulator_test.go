package sim

import (
	"errors"
	"fmt"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Simulator", func() {
	var (
		mockCtrl  *gomock.Controller
		world     *MockWorld
		env       *MockEventEnvironment
		simulator *Simulator
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		world = NewMockWorld(mockCtrl)
		env = NewMockEventEnvironment(mockCtrl)
		world.EXPECT().EventEnvironment().Return(env).AnyTimes()
		simulator = NewSimulator()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should fail if the current time is not set", func() {
		world.EXPECT().CurrentTime().Return(VTime(0), false)
		simulator.SetTargetTime(1000)

		err := simulator.Simulate(world)

		Expect(err).To(MatchError(ErrCurrentTimeUnset))
	})

	It("should fail if the target time is not set", func() {
		world.EXPECT().CurrentTime().Return(VTime(0), true)

		err := simulator.Simulate(world)

		Expect(err).To(MatchError(ErrTargetTimeUnset))
		_, ok := simulator.TargetTime()
		Expect(ok).To(BeFalse())
	})

	It("should not run time backward", func() {
		world.EXPECT().CurrentTime().Return(VTime(1000), true)
		simulator.SetTargetTime(999)

		err := simulator.Simulate(world)

		Expect(errors.Is(err, ErrInvalidPeriod)).To(BeTrue())
	})

	It("should do nothing if already at the target time", func() {
		world.EXPECT().CurrentTime().Return(VTime(1000), true)
		simulator.SetTargetTime(1000)

		err := simulator.Simulate(world)

		Expect(err).NotTo(HaveOccurred())
	})

	It("should integrate and fire events in order", func() {
		predictable := NewMockPredictable(mockCtrl)
		evt := NewMockWorldEvent(mockCtrl)
		evt.EXPECT().Time().Return(VTime(400)).AnyTimes()
		evt.EXPECT().ID().Return("E1").AnyTimes()

		world.EXPECT().CurrentTime().Return(VTime(0), true)
		world.EXPECT().Events().Return([]WorldEvent{evt})
		world.EXPECT().Predictables().
			Return([]Predictable{predictable}).
			Times(2)

		gomock.InOrder(
			predictable.EXPECT().Predict(0.4),
			world.EXPECT().SetCurrentTime(VTime(400)),
			evt.EXPECT().Happen(env).Return(nil),
			predictable.EXPECT().Predict(0.6),
			world.EXPECT().SetCurrentTime(VTime(1000)),
		)

		simulator.SetTargetTime(1000)
		err := simulator.Simulate(world)

		Expect(err).NotTo(HaveOccurred())
	})

	It("should stop at a failing event and keep earlier effects", func() {
		predictable := NewMockPredictable(mockCtrl)
		failing := NewMockWorldEvent(mockCtrl)
		failing.EXPECT().Time().Return(VTime(300)).AnyTimes()
		failing.EXPECT().ID().Return("broken").AnyTimes()
		later := NewMockWorldEvent(mockCtrl)
		later.EXPECT().Time().Return(VTime(600)).AnyTimes()
		later.EXPECT().ID().Return("later").AnyTimes()

		world.EXPECT().CurrentTime().Return(VTime(0), true)
		world.EXPECT().Events().Return([]WorldEvent{later, failing})
		world.EXPECT().Predictables().Return([]Predictable{predictable})

		gomock.InOrder(
			predictable.EXPECT().Predict(0.3),
			world.EXPECT().SetCurrentTime(VTime(300)),
			failing.EXPECT().
				Happen(env).
				Return(fmt.Errorf("%w: %q", ErrEntityNotFound, "ghost")),
		)

		simulator.SetTargetTime(1000)
		err := simulator.Simulate(world)

		Expect(errors.Is(err, ErrEntityNotFound)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("broken"))
	})

	It("should invoke hooks around steps", func() {
		hook := NewMockHook(mockCtrl)
		simulator.AcceptHook(hook)

		world.EXPECT().CurrentTime().Return(VTime(0), true)
		world.EXPECT().Events().Return(nil)
		world.EXPECT().Predictables().Return(nil)
		world.EXPECT().SetCurrentTime(VTime(10))

		var positions []*HookPos
		hook.EXPECT().Func(gomock.Any()).
			Do(func(ctx HookCtx) {
				Expect(ctx.Domain).To(BeIdenticalTo(simulator))
				positions = append(positions, ctx.Pos)
			}).
			Times(4)

		simulator.SetTargetTime(10)
		err := simulator.Simulate(world)

		Expect(err).NotTo(HaveOccurred())
		Expect(positions).To(Equal([]*HookPos{
			HookPosSimulateStart,
			HookPosBeforeStep,
			HookPosAfterStep,
			HookPosSimulateEnd,
		}))
	})

	It("should panic when accepting the same hook twice", func() {
		hook := NewMockHook(mockCtrl)
		simulator.AcceptHook(hook)

		Expect(func() { simulator.AcceptHook(hook) }).To(Panic())
		Expect(simulator.NumHooks()).To(Equal(1))
	})
})

var _ = Describe("Simulator with a world", func() {
	var (
		w         *testWorld
		simulator *Simulator
	)

	BeforeEach(func() {
		w = newTestWorld()
		w.SetCurrentTime(0)
		simulator = NewSimulator()
	})

	It("should see the event time when an event fires", func() {
		c := &counter{}
		w.AddEntity("c", c)
		w.events = []WorldEvent{w.loggingEvent("E1", 400)}

		simulator.SetTargetTime(1000)
		Expect(simulator.Simulate(w)).To(Succeed())

		Expect(c.total).To(BeNumerically("~", 1.0, 1e-12))
		Expect(c.calls).To(Equal(2))
		Expect(w.log).To(Equal([]string{"E1@400"}))
		Expect(w.now).To(Equal(VTime(1000)))
	})

	It("should not advance entities between same-time events", func() {
		c := &counter{}
		w.AddEntity("c", c)
		var seen []float64
		record := func(id string) *testEvent {
			return &testEvent{id: id, time: 500, happen: func(EventEnvironment) error {
				seen = append(seen, c.total)
				return nil
			}}
		}
		w.events = []WorldEvent{record("B"), record("A")}

		simulator.SetTargetTime(1000)
		Expect(simulator.Simulate(w)).To(Succeed())

		Expect(seen).To(HaveLen(2))
		Expect(seen[0]).To(Equal(seen[1]))
		Expect(c.calls).To(Equal(2))
	})

	It("should fire same-time events in ID order", func() {
		w.events = []WorldEvent{w.loggingEvent("b", 500), w.loggingEvent("a", 500)}

		for i := 0; i < 5; i++ {
			w.log = nil
			w.SetCurrentTime(0)
			simulator.SetTargetTime(1000)
			Expect(simulator.Simulate(w)).To(Succeed())
			Expect(w.log).To(Equal([]string{"a@500", "b@500"}))
		}
	})

	It("should integrate entities added by an earlier event", func() {
		spawned := &counter{}
		w.events = []WorldEvent{&testEvent{
			id:   "spawn",
			time: 250,
			happen: func(env EventEnvironment) error {
				env.AddEntity("spawned", spawned)
				return nil
			},
		}}

		simulator.SetTargetTime(1000)
		Expect(simulator.Simulate(w)).To(Succeed())

		Expect(spawned.total).To(BeNumerically("~", 0.75, 1e-12))
	})

	It("should stop integrating entities removed by an event", func() {
		removed := &counter{}
		w.AddEntity("removed", removed)
		w.events = []WorldEvent{&testEvent{
			id:   "remove",
			time: 100,
			happen: func(env EventEnvironment) error {
				env.RemoveEntity("removed")
				return nil
			},
		}}

		simulator.SetTargetTime(1000)
		Expect(simulator.Simulate(w)).To(Succeed())

		Expect(removed.total).To(BeNumerically("~", 0.1, 1e-12))
	})

	It("should not mutate the world when time would run backward", func() {
		c := &counter{}
		w.AddEntity("c", c)
		w.SetCurrentTime(500)
		w.events = []WorldEvent{w.loggingEvent("a", 100)}

		simulator.SetTargetTime(0)
		err := simulator.Simulate(w)

		Expect(errors.Is(err, ErrInvalidPeriod)).To(BeTrue())
		Expect(w.now).To(Equal(VTime(500)))
		Expect(c.calls).To(Equal(0))
		Expect(w.log).To(BeEmpty())
	})

	It("should not depend on the order events are registered in", func() {
		r := rand.New(rand.NewSource(7))

		run := func(order []int) (float64, []string) {
			w := newTestWorld()
			w.SetCurrentTime(0)
			c := &counter{}
			w.AddEntity("c", c)

			all := []*testEvent{
				w.loggingEvent("x", 300),
				w.loggingEvent("y", 300),
				w.loggingEvent("m", 100),
				w.loggingEvent("a", 900),
				w.loggingEvent("k", 0),
			}
			for _, i := range order {
				w.events = append(w.events, all[i])
			}

			s := NewSimulator()
			s.SetTargetTime(1000)
			Expect(s.Simulate(w)).To(Succeed())

			return c.total, w.log
		}

		expectedTotal, expectedLog := run([]int{0, 1, 2, 3, 4})
		for i := 0; i < 10; i++ {
			total, log := run(r.Perm(5))
			Expect(total).To(BeNumerically("~", expectedTotal, 1e-12))
			Expect(log).To(Equal(expectedLog))
		}
		Expect(expectedLog).To(Equal([]string{
			"k@0", "m@100", "x@300", "y@300", "a@900",
		}))
	})

	It("should give the same result when split into two calls", func() {
		run := func(targets ...VTime) (float64, []string) {
			w := newTestWorld()
			w.SetCurrentTime(0)
			c := &counter{}
			w.AddEntity("c", c)
			w.events = []WorldEvent{
				w.loggingEvent("a", 200),
				w.loggingEvent("b", 500),
				w.loggingEvent("c", 700),
			}

			s := NewSimulator()
			for _, t := range targets {
				s.SetTargetTime(t)
				Expect(s.Simulate(w)).To(Succeed())
			}

			Expect(w.now).To(Equal(targets[len(targets)-1]))
			return c.total, w.log
		}

		singleTotal, singleLog := run(1000)
		splitTotal, splitLog := run(500, 1000)

		Expect(splitTotal).To(BeNumerically("~", singleTotal, 1e-12))
		Expect(splitLog).To(Equal(singleLog))
	})
})
