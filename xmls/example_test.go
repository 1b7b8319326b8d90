package xmls

import (
	"bytes"
	"fmt"
)

func Example() {
	o := bytes.NewReader([]byte(`<?xml version="1.0"?>
<monsters offset="1001">
	<monster id="1" name="Maggot">
		<sprite>monsters/maggot.xml|#e0b0a0,ffe0d0</sprite>
	</monster>
</monsters>`))
	monsters, err := ReadMonsters(o)
	if err != nil {
		panic(err)
	}

	fmt.Println(monsters.Monster[0].Name, monsters.Job(&monsters.Monster[0]))
	// Output:
	// Maggot 1002
}

func ExampleReadSprite() {
	s, err := ReadSprite(bytes.NewReader([]byte(`<?xml version="1.0"?>
<sprite>
	<imageset name="base" src="graphics/sprites/maggot.png|W" width="40" height="40"/>
	<action name="stand" imageset="base">
		<animation direction="down">
			<sequence start="0" end="2" delay="100"/>
			<frame index="5" offsetX="1"/>
		</animation>
	</action>
</sprite>`)))
	if err != nil {
		panic(err)
	}

	dye, _ := s.FirstImageset().SrcDye()
	fmt.Println(s.FirstImageset().SrcPath(), dye)
	for _, step := range s.Action[0].Animation[0].Steps {
		fmt.Println(step.XMLName.Local, step.Kind() == StepFrame)
	}
	// Output:
	// graphics/sprites/maggot.png W
	// sequence false
	// frame true
}
