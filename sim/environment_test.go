package sim

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

type notACounter struct{}

func (notACounter) Predict(float64) {}

var _ = Describe("Entity lookup", func() {
	var (
		mockCtrl *gomock.Controller
		env      *MockEventEnvironment
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		env = NewMockEventEnvironment(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should find an entity of the right type", func() {
		c := &counter{}
		env.EXPECT().Entity("c").Return(c, true)

		found, status := LookupEntity[*counter](env, "c")

		Expect(status).To(Equal(LookupFound))
		Expect(found).To(BeIdenticalTo(c))
	})

	It("should report a missing entity", func() {
		env.EXPECT().Entity("ghost").Return(nil, false)

		found, status := LookupEntity[*counter](env, "ghost")

		Expect(status).To(Equal(LookupNotFound))
		Expect(found).To(BeNil())
	})

	It("should report an entity of the wrong type", func() {
		env.EXPECT().Entity("other").Return(notACounter{}, true)

		_, status := LookupEntity[*counter](env, "other")

		Expect(status).To(Equal(LookupWrongType))
	})

	It("should turn a missing entity into an error", func() {
		env.EXPECT().Entity("ghost").Return(nil, false)

		_, err := MustEntity[*counter](env, "ghost")

		Expect(errors.Is(err, ErrEntityNotFound)).To(BeTrue())
	})

	It("should turn a wrong type into an error", func() {
		env.EXPECT().Entity("other").Return(notACounter{}, true).Times(2)

		_, err := MustEntity[*counter](env, "other")

		Expect(errors.Is(err, ErrEntityTypeMismatch)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("sim.notACounter"))
		Expect(err.Error()).To(ContainSubstring("*sim.counter"))
	})
})

var _ = Describe("IDGenerator", func() {
	It("should generate sequential IDs that sort in order", func() {
		g := &sequentialIDGenerator{}

		ids := make([]string, 0, 12)
		for i := 0; i < 12; i++ {
			ids = append(ids, g.Generate())
		}

		for i := 1; i < len(ids); i++ {
			Expect(ids[i-1] < ids[i]).To(BeTrue())
		}
	})

	It("should refuse to switch generators once IDs are issued", func() {
		first := GetIDGenerator()

		Expect(UseParallelIDGenerator).To(Panic())
		Expect(UseSequentialIDGenerator).To(Panic())
		Expect(GetIDGenerator()).To(BeIdenticalTo(first))
	})

	It("should generate distinct parallel IDs", func() {
		g := parallelIDGenerator{}

		Expect(g.Generate()).NotTo(Equal(g.Generate()))
	})
})
